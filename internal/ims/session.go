package ims

import (
	"context"
	"errors"
	"strings"
	"time"

	"ims-shopify/internal/remote"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type Credentials struct {
	ClientID     string
	ClientSecret string
	APIKey       string
	AuthURL      string
	APIURL       string
}

// Client is an authenticated IMS API client.
type Client struct {
	api *remote.Client
}

// NewSession exchanges client credentials for a bearer token and returns a
// client that sends it, plus the API key, on every call. Tokens are not cached.
func NewSession(ctx context.Context, creds Credentials, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(creds.ClientID) == "" || strings.TrimSpace(creds.ClientSecret) == "" || strings.TrimSpace(creds.APIKey) == "" {
		return nil, &AuthenticationError{Err: errors.New("missing client id, client secret or api key")}
	}

	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     strings.TrimRight(creds.AuthURL, "/") + "/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	tok, err := cc.Token(ctx)
	if err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	if tok.AccessToken == "" {
		return nil, &AuthenticationError{Err: errors.New("token response without access_token")}
	}

	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	hc.Timeout = 30 * time.Second

	api, err := remote.New("IMS", creds.APIURL,
		remote.WithHTTPClient(hc),
		remote.WithHeader("x-api-key", creds.APIKey),
		remote.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

