package ims

import (
	"context"
	"encoding/json"
	"fmt"
)

// ID accepts both numeric and string identifiers as returned by IMS.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ims id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type DataExtension struct {
	ID                ID     `json:"id,omitempty"`
	EntityName        string `json:"entityName"`
	DataExtensionName string `json:"dataExtensionName"`
	DataSchema        string `json:"dataSchema"`
}

// Seller is read-only here; DataDocument is a JSON string and may be null.
type Seller struct {
	ID           ID      `json:"id"`
	SellerNumber string  `json:"sellerNumber,omitempty"`
	DataDocument *string `json:"dataDocument"`
}

func (c *Client) ListDataExtensions(ctx context.Context) ([]DataExtension, error) {
	var out []DataExtension
	if err := c.api.Get(ctx, "dataExtensions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDataExtension(ctx context.Context, ext DataExtension) (*DataExtension, error) {
	ext.ID = ""
	var out DataExtension
	if err := c.api.Post(ctx, "dataExtensions", ext, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDataExtensionSchema(ctx context.Context, id ID, dataSchema string) error {
	return c.api.Patch(ctx, "dataExtensions/"+id.String(), map[string]string{"dataSchema": dataSchema}, nil)
}

// ListSellers returns every seller in one call; IMS pagination is not followed.
func (c *Client) ListSellers(ctx context.Context) ([]Seller, error) {
	var out []Seller
	if err := c.api.Get(ctx, "sellers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateSellerDataDocument(ctx context.Context, id ID, document string) error {
	return c.api.Patch(ctx, "sellers/"+id.String(), map[string]string{"dataDocument": document}, nil)
}

