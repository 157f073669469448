package main

import (
	"context"

	"ims-shopify/internal/alerts"
	"ims-shopify/internal/config"
	"ims-shopify/internal/handlers"
	"ims-shopify/internal/logging"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	logger := logging.New(cfg.LogLevel)
	if err != nil {
		// Keep going: the custom resource must still be acknowledged, and the
		// missing credential will surface as the response reason.
		logger.Error().Err(err).Msg("load config")
	}

	var notifier *alerts.Notifier
	if cfg.AlertsTopicARN != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("load aws config, alerts disabled")
		} else {
			notifier = alerts.New(sns.NewFromConfig(awsCfg), cfg.AlertsTopicARN)
		}
	}

	h := handlers.NewInitializer(cfg, notifier, logger)
	lambda.Start(h.Handle)
}
