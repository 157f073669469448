package handlers

import (
	"context"

	"ims-shopify/internal/logging"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// Notification acknowledges fulfillment order notifications from Shopify.
// The payload is only logged.
type Notification struct {
	log zerolog.Logger
}

func NewNotification(log zerolog.Logger) *Notification {
	return &Notification{log: logging.Component(log, "fulfillment-order-notification")}
}

func (h *Notification) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.log.Info().
		Str("shop", header(req, shopDomainHeader)).
		Str("path", req.Path).
		Str("body", req.Body).
		Msg("fulfillment order notification received")
	return ok(), nil
}
