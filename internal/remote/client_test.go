package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DoResolvesPathAndSendsHeaders(t *testing.T) {
	var gotPath, gotMethod, gotKey, gotType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotKey = r.Header.Get("x-api-key")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x1"}`))
	}))
	defer srv.Close()

	c, err := New("IMS", srv.URL+"/2", WithHeader("x-api-key", "k"))
	require.NoError(t, err)

	var out struct {
		ID string `json:"id"`
	}
	err = c.Patch(context.Background(), "dataExtensions/x1", map[string]string{"dataSchema": "{}"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/2/dataExtensions/x1", gotPath)
	assert.Equal(t, "k", gotKey)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "{}", gotBody["dataSchema"])
	assert.Equal(t, "x1", out.ID)
}

func TestClient_NonSuccessIsCallError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"exists"}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c, err := New("IMS", srv.URL, WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	err = c.Post(context.Background(), "dataExtensions", map[string]string{}, nil)
	require.Error(t, err)

	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusConflict, ce.StatusCode)
	assert.Equal(t, "IMS", ce.System)
	assert.Contains(t, ce.Body, "exists")
	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Contains(t, logs.String(), "FAILURE")
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New("Shopify", url)
	require.NoError(t, err)

	err = c.Get(context.Background(), "shop.json", nil)
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Zero(t, ce.StatusCode)
	assert.Error(t, ce.Err)
}

func TestClient_LogsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c, err := New("IMS", srv.URL, WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "sellers", &out))
	assert.Empty(t, out)
	assert.Contains(t, logs.String(), "SUCCESS")
	assert.Contains(t, logs.String(), `"remote":"IMS"`)
}
