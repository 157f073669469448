package setup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DocumentKey is the key of the integration setup inside a seller's data document.
const DocumentKey = "ShopifyIntegration"

var (
	ErrNoDocument = errors.New("seller has no data document")
	ErrNoSetup    = errors.New("data document has no " + DocumentKey)
)

// IntegrationSetup links a seller to a Shopify store.
// FulfillmentServiceID is nil until the fulfillment service is registered.
type IntegrationSetup struct {
	ShopDomain           string  `json:"shopDomain"`
	AccessToken          string  `json:"accessToken"`
	LocationName         string  `json:"locationName"`
	FulfillmentServiceID *string `json:"fulfillmentServiceId"`
}

func (s *IntegrationSetup) UnmarshalJSON(b []byte) error {
	var raw struct {
		ShopDomain           string          `json:"shopDomain"`
		AccessToken          string          `json:"accessToken"`
		LocationName         string          `json:"locationName"`
		FulfillmentServiceID json.RawMessage `json:"fulfillmentServiceId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	id, err := parseServiceID(raw.FulfillmentServiceID)
	if err != nil {
		return err
	}
	*s = IntegrationSetup{
		ShopDomain:           raw.ShopDomain,
		AccessToken:          raw.AccessToken,
		LocationName:         raw.LocationName,
		FulfillmentServiceID: id,
	}
	return nil
}

// Registered reports whether a fulfillment service id is already recorded.
func (s IntegrationSetup) Registered() bool {
	return s.FulfillmentServiceID != nil
}

// parseServiceID accepts a JSON string or number; null, absent and "" mean unset.
func parseServiceID(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return &s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("fulfillmentServiceId: %w", err)
	}
	v := n.String()
	return &v, nil
}

// Parse extracts the integration setup from a seller data document.
func Parse(document *string) (IntegrationSetup, error) {
	if document == nil || strings.TrimSpace(*document) == "" {
		return IntegrationSetup{}, ErrNoDocument
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*document), &doc); err != nil {
		return IntegrationSetup{}, fmt.Errorf("parse data document: %w", err)
	}
	if doc == nil {
		return IntegrationSetup{}, ErrNoDocument
	}

	raw, ok := doc[DocumentKey]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return IntegrationSetup{}, ErrNoSetup
	}

	var s IntegrationSetup
	if err := json.Unmarshal(raw, &s); err != nil {
		return IntegrationSetup{}, fmt.Errorf("parse %s: %w", DocumentKey, err)
	}
	return s, nil
}

// WithFulfillmentServiceID returns document with the setup's fulfillmentServiceId
// set to id. Every other key, inside and outside the setup, is kept.
func WithFulfillmentServiceID(document string, id string) (string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return "", fmt.Errorf("parse data document: %w", err)
	}
	if doc == nil {
		return "", ErrNoDocument
	}

	raw, ok := doc[DocumentKey]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return "", ErrNoSetup
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("parse %s: %w", DocumentKey, err)
	}

	idRaw, _ := json.Marshal(id)
	fields["fulfillmentServiceId"] = idRaw

	setupRaw, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	doc[DocumentKey] = setupRaw

	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
