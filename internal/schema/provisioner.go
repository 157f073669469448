package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"ims-shopify/internal/ims"

	"github.com/rs/zerolog"
)

const (
	EntityName        = "seller"
	DataExtensionName = "ShopifyIntegration"
)

type Mode int

const (
	// ModeCreate posts the schema without looking for an existing one.
	ModeCreate Mode = iota
	// ModeUpdate patches the existing schema, creating it when absent.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type DataExtensionAPI interface {
	ListDataExtensions(ctx context.Context) ([]ims.DataExtension, error)
	CreateDataExtension(ctx context.Context, ext ims.DataExtension) (*ims.DataExtension, error)
	UpdateDataExtensionSchema(ctx context.Context, id ims.ID, dataSchema string) error
}

// SellerDataSchema is the JSON schema of the seller's ShopifyIntegration document.
var SellerDataSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"shopDomain":           map[string]string{"type": "string"},
		"accessToken":          map[string]string{"type": "string"},
		"locationName":         map[string]string{"type": "string"},
		"fulfillmentServiceId": map[string]string{"type": "string"},
	},
}

type Provisioner struct {
	api    DataExtensionAPI
	schema string
	log    zerolog.Logger
}

func NewProvisioner(api DataExtensionAPI, log zerolog.Logger) (*Provisioner, error) {
	return NewProvisionerWithSchema(api, SellerDataSchema, log)
}

func NewProvisionerWithSchema(api DataExtensionAPI, schema any, log zerolog.Logger) (*Provisioner, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode data schema: %w", err)
	}
	return &Provisioner{api: api, schema: string(b), log: log}, nil
}

func (p *Provisioner) Provision(ctx context.Context, mode Mode) error {
	switch mode {
	case ModeCreate:
		return p.create(ctx)
	case ModeUpdate:
		return p.update(ctx)
	default:
		return fmt.Errorf("unknown provisioning mode %s", mode)
	}
}

func (p *Provisioner) create(ctx context.Context) error {
	ext, err := p.api.CreateDataExtension(ctx, ims.DataExtension{
		EntityName:        EntityName,
		DataExtensionName: DataExtensionName,
		DataSchema:        p.schema,
	})
	if err != nil {
		return fmt.Errorf("create data extension %s/%s: %w", EntityName, DataExtensionName, err)
	}
	p.log.Info().Str("id", ext.ID.String()).Msg("data extension created")
	return nil
}

// update scans the full, unpaginated list; only the first match is patched.
func (p *Provisioner) update(ctx context.Context) error {
	exts, err := p.api.ListDataExtensions(ctx)
	if err != nil {
		return fmt.Errorf("list data extensions: %w", err)
	}

	for _, ext := range exts {
		if ext.EntityName != EntityName || ext.DataExtensionName != DataExtensionName {
			continue
		}
		if err := p.api.UpdateDataExtensionSchema(ctx, ext.ID, p.schema); err != nil {
			return fmt.Errorf("update data extension %s: %w", ext.ID, err)
		}
		p.log.Info().Str("id", ext.ID.String()).Msg("data extension updated")
		return nil
	}

	p.log.Info().Msg("data extension not found, creating")
	return p.create(ctx)
}
