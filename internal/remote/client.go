package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks JSON to one named remote system relative to a base URL.
type Client struct {
	name    string
	baseURL *url.URL
	headers http.Header
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithHTTPClient replaces the transport, e.g. with an oauth2 client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(name, baseURL string, opts ...Option) (*Client, error) {
	// Relative paths resolve under the base only when it ends in a slash.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base url %q: %w", name, baseURL, err)
	}

	c := &Client{
		name:    name,
		baseURL: u,
		headers: http.Header{},
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("remote", name).Logger()
	return c, nil
}

func (c *Client) Name() string { return c.name }

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Do sends body as JSON and decodes a 2xx JSON response into out (if non-nil).
// Every response is logged; failures come back as *CallError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	target := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &CallError{System: c.name, Method: method, Path: path, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return &CallError{System: c.name, Method: method, Path: path, Err: err}
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("FAILURE")
		return &CallError{System: c.name, Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", res.StatusCode).
			Str("body", string(raw)).
			Msg("FAILURE")
		return &CallError{System: c.name, Method: method, Path: path, StatusCode: res.StatusCode, Body: string(raw)}
	}

	c.log.Info().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Str("body", string(raw)).
		Msg("SUCCESS")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &CallError{System: c.name, Method: method, Path: path, StatusCode: res.StatusCode, Body: string(raw), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
