package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"ims-shopify/internal/config"
	"ims-shopify/internal/ims"
	"ims-shopify/internal/logging"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

func jsonResp(status int, v any) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(v)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"content-type": "application/json",
		},
		Body: string(b),
	}
}

func errResp(status int, msg string) events.APIGatewayProxyResponse {
	return jsonResp(status, map[string]any{
		"error": msg,
	})
}

func ok() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: 200}
}

// header looks a request header up case-insensitively.
func header(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	for k, vs := range req.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
	}
	return ""
}

// connectIMS authenticates a fresh IMS session for every invocation.
func connectIMS(cfg config.Config, log zerolog.Logger) func(ctx context.Context) (*ims.Client, error) {
	return func(ctx context.Context) (*ims.Client, error) {
		if err := cfg.Validate(); err != nil {
			return nil, &ims.AuthenticationError{Err: err}
		}
		return ims.NewSession(ctx, ims.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			APIKey:       cfg.APIKey,
			AuthURL:      cfg.AuthURL,
			APIURL:       cfg.APIURL,
		}, logging.Component(log, "ims"))
	}
}
