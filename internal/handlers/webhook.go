package handlers

import (
	"context"
	"errors"
	"fmt"

	"ims-shopify/internal/config"
	"ims-shopify/internal/logging"
	"ims-shopify/internal/setup"
	"ims-shopify/internal/shopify"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

const (
	shopDomainHeader = "X-Shopify-Shop-Domain"
	hostHeader       = "Host"
)

type sellerAPI interface {
	setup.SellerLister
	setup.SellerDocumentWriter
}

// Webhook resolves the seller behind a Shopify webhook and makes sure the
// store has our fulfillment service registered.
type Webhook struct {
	log      zerolog.Logger
	connect  func(ctx context.Context) (sellerAPI, error)
	services func(shopDomain, accessToken string) (shopify.FulfillmentServices, error)
}

func NewWebhook(cfg config.Config, log zerolog.Logger) *Webhook {
	connect := connectIMS(cfg, log)
	shopifyLog := logging.Component(log, "shopify")
	return &Webhook{
		log: logging.Component(log, "webhook"),
		connect: func(ctx context.Context) (sellerAPI, error) {
			client, err := connect(ctx)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		services: func(shopDomain, accessToken string) (shopify.FulfillmentServices, error) {
			client, err := shopify.NewClient(shopDomain, accessToken, cfg.ShopifyAPIVersion, shopifyLog)
			if err != nil {
				return nil, err
			}
			return client.FulfillmentService, nil
		},
	}
}

func (h *Webhook) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	shopDomain := header(req, shopDomainHeader)
	host := header(req, hostHeader)
	log := h.log.With().Str("shop", shopDomain).Logger()

	log.Info().
		Str("topic", header(req, "X-Shopify-Topic")).
		Str("webhook_id", header(req, "X-Shopify-Webhook-Id")).
		Str("body", req.Body).
		Msg("webhook received")

	if shopDomain == "" {
		return errResp(400, "missing "+shopDomainHeader+" header"), nil
	}
	if host == "" {
		return errResp(400, "missing "+hostHeader+" header"), nil
	}

	api, err := h.connect(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("webhook %s: %w", shopDomain, err)
	}

	res, err := setup.NewResolver(api, log).Resolve(ctx, shopDomain)
	if errors.Is(err, setup.ErrNotFound) {
		log.Warn().Msg("no seller is set up for this shop")
		return errResp(404, "no seller is set up for "+shopDomain), nil
	}
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("webhook %s: resolve setup: %w", shopDomain, err)
	}

	services, err := h.services(res.Setup.ShopDomain, res.Setup.AccessToken)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("webhook %s: %w", shopDomain, err)
	}

	outcome, err := shopify.NewRegistrar(setup.NewStore(api), log).Ensure(ctx, services, res, "https://"+host)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("webhook %s: %w", shopDomain, err)
	}

	log.Info().Str("seller_id", res.SellerID.String()).Str("fulfillment_service", outcome.String()).Msg("webhook handled")
	return ok(), nil
}
