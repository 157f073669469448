package ims_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ims-shopify/internal/ims"
	"ims-shopify/internal/ims/imstest"
	"ims-shopify/internal/remote"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_AuthenticatesAndSendsHeaders(t *testing.T) {
	srv := imstest.NewServer()
	defer srv.Close()
	srv.Sellers = []ims.Seller{{ID: "1"}}

	client, err := ims.NewSession(context.Background(), srv.Credentials(), zerolog.Nop())
	require.NoError(t, err)

	sellers, err := client.ListSellers(context.Background())
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, ims.ID("1"), sellers[0].ID)
	assert.Nil(t, sellers[0].DataDocument)
}

func TestNewSession_MissingCredentials(t *testing.T) {
	creds := ims.Credentials{ClientID: "id", AuthURL: "http://127.0.0.1:1/", APIURL: "http://127.0.0.1:1/"}

	_, err := ims.NewSession(context.Background(), creds, zerolog.Nop())

	var authErr *ims.AuthenticationError
	assert.True(t, errors.As(err, &authErr))
}

func TestNewSession_TokenRejected(t *testing.T) {
	srv := imstest.NewServer()
	defer srv.Close()
	srv.FailToken = true

	_, err := ims.NewSession(context.Background(), srv.Credentials(), zerolog.Nop())

	var authErr *ims.AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Empty(t, srv.Calls())
}

func TestClient_DataExtensions(t *testing.T) {
	srv := imstest.NewServer()
	defer srv.Close()

	client, err := ims.NewSession(context.Background(), srv.Credentials(), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.CreateDataExtension(ctx, ims.DataExtension{
		EntityName:        "seller",
		DataExtensionName: "ShopifyIntegration",
		DataSchema:        `{"type":"object"}`,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	require.NoError(t, client.UpdateDataExtensionSchema(ctx, created.ID, `{"type":"string"}`))

	list, err := client.ListDataExtensions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, `{"type":"string"}`, list[0].DataSchema)
	assert.Equal(t, 1, srv.CallsTo(http.MethodPatch, "dataExtensions/"+created.ID.String()))
}

func TestClient_UpdateSellerDataDocument(t *testing.T) {
	srv := imstest.NewServer()
	defer srv.Close()
	srv.Sellers = []ims.Seller{{ID: "7", DataDocument: imstest.Document(`{}`)}}

	client, err := ims.NewSession(context.Background(), srv.Credentials(), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, client.UpdateSellerDataDocument(context.Background(), "7", `{"a":1}`))
	assert.Equal(t, `{"a":1}`, *srv.SellerDocument("7"))
}

func TestClient_RemoteFailureIsCallError(t *testing.T) {
	srv := imstest.NewServer()
	defer srv.Close()
	srv.FailPaths["GET sellers"] = http.StatusInternalServerError

	client, err := ims.NewSession(context.Background(), srv.Credentials(), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.ListSellers(context.Background())
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode(err))
}

func TestID_UnmarshalNumberOrString(t *testing.T) {
	var ext ims.DataExtension
	require.NoError(t, ext.ID.UnmarshalJSON([]byte(`42`)))
	assert.Equal(t, ims.ID("42"), ext.ID)

	require.NoError(t, ext.ID.UnmarshalJSON([]byte(`"x1"`)))
	assert.Equal(t, ims.ID("x1"), ext.ID)

	require.NoError(t, ext.ID.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, ims.ID(""), ext.ID)
}
