package shopify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// NewClient builds an admin REST client authenticated with the store's access token.
func NewClient(shopDomain, accessToken, apiVersion string, log zerolog.Logger) (*goshopify.Client, error) {
	shopDomain = strings.TrimSpace(shopDomain)
	if shopDomain == "" || strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("shopify client: missing shop domain or access token")
	}

	client, err := goshopify.NewClient(goshopify.App{}, shopDomain, accessToken,
		goshopify.WithVersion(apiVersion),
		goshopify.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
		goshopify.WithLogger(&leveledLogger{log: log.With().Str("remote", "Shopify").Str("shop", shopDomain).Logger()}),
	)
	if err != nil {
		return nil, fmt.Errorf("shopify client for %s: %w", shopDomain, err)
	}
	return client, nil
}

// leveledLogger adapts zerolog to go-shopify's logger interface.
type leveledLogger struct {
	log zerolog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l *leveledLogger) Infof(format string, v ...interface{})  { l.log.Info().Msgf(format, v...) }
func (l *leveledLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l *leveledLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
