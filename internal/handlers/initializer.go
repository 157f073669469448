package handlers

import (
	"context"
	"fmt"

	"ims-shopify/internal/alerts"
	"ims-shopify/internal/config"
	"ims-shopify/internal/logging"
	"ims-shopify/internal/schema"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/rs/zerolog"
)

// PhysicalResourceID identifies the custom resource towards CloudFormation.
const PhysicalResourceID = "ShopifyIntegrationSchema"

// Initializer backs the CloudFormation custom resource that provisions the
// seller data extension.
type Initializer struct {
	log     zerolog.Logger
	connect func(ctx context.Context) (schema.DataExtensionAPI, error)
	alerts  *alerts.Notifier
	send    func(*cfn.Response) error
}

func NewInitializer(cfg config.Config, notifier *alerts.Notifier, log zerolog.Logger) *Initializer {
	connect := connectIMS(cfg, log)
	return &Initializer{
		log: logging.Component(log, "initializer"),
		connect: func(ctx context.Context) (schema.DataExtensionAPI, error) {
			client, err := connect(ctx)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		alerts: notifier,
		send:   func(r *cfn.Response) error { return r.Send() },
	}
}

// Handle always acknowledges SUCCESS so a provisioning error never rolls the
// stack back; the error text travels in Reason. Only a failure to deliver the
// acknowledgement itself is returned.
func (h *Initializer) Handle(ctx context.Context, event cfn.Event) error {
	log := h.log.With().
		Str("request_type", string(event.RequestType)).
		Str("request_id", event.RequestID).
		Str("logical_resource_id", event.LogicalResourceID).
		Logger()

	reason := "OK"
	if err := h.provision(ctx, log, event.RequestType); err != nil {
		log.Error().Err(err).Msg("provisioning failed, acknowledging anyway")
		reason = err.Error()
		if aerr := h.alerts.ProvisioningFailed(ctx, event, err); aerr != nil {
			log.Warn().Err(aerr).Msg("failed to publish provisioning alert")
		}
	}

	resp := cfn.NewResponse(&event)
	resp.Status = cfn.StatusSuccess
	resp.PhysicalResourceID = PhysicalResourceID
	resp.Reason = reason

	if err := h.send(resp); err != nil {
		log.Error().Err(err).Msg("failed to send cloudformation response")
		return fmt.Errorf("send cloudformation response: %w", err)
	}
	log.Info().Str("reason", reason).Msg("cloudformation acknowledged")
	return nil
}

func (h *Initializer) provision(ctx context.Context, log zerolog.Logger, requestType cfn.RequestType) error {
	var mode schema.Mode
	switch requestType {
	case cfn.RequestCreate:
		mode = schema.ModeCreate
	case cfn.RequestUpdate:
		mode = schema.ModeUpdate
	default:
		log.Info().Msg("nothing to provision")
		return nil
	}

	api, err := h.connect(ctx)
	if err != nil {
		return err
	}
	p, err := schema.NewProvisioner(api, log)
	if err != nil {
		return err
	}
	if err := p.Provision(ctx, mode); err != nil {
		return fmt.Errorf("provision %s: %w", mode, err)
	}
	return nil
}
