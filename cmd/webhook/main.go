package main

import (
	"context"

	"ims-shopify/internal/config"
	"ims-shopify/internal/handlers"
	"ims-shopify/internal/logging"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load(context.Background())
	logger := logging.New(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	h := handlers.NewWebhook(cfg, logger)
	lambda.Start(h.Handle)
}
