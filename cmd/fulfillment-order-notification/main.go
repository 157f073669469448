package main

import (
	"ims-shopify/internal/config"
	"ims-shopify/internal/handlers"
	"ims-shopify/internal/logging"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	logger := logging.New(config.LogLevel())

	h := handlers.NewNotification(logger)
	lambda.Start(h.Handle)
}
