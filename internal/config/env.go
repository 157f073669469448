package config

import (
	"os"
	"strings"
)

const (
	DefaultAuthURL           = "https://auth.thetis-ims.com/oauth2/"
	DefaultAPIURL            = "https://api.thetis-ims.com/2/"
	DefaultShopifyAPIVersion = "2023-10"
)

func ClientID() string {
	return strings.TrimSpace(os.Getenv("ClientId"))
}

func ClientSecret() string {
	return strings.TrimSpace(os.Getenv("ClientSecret"))
}

// ClientSecretParameter names an SSM SecureString holding the client secret.
func ClientSecretParameter() string {
	return strings.TrimSpace(os.Getenv("ClientSecretParameter"))
}

func APIKey() string {
	return strings.TrimSpace(os.Getenv("ApiKey"))
}

func AuthURL() string {
	return envOr("IMS_AUTH_URL", DefaultAuthURL)
}

func APIURL() string {
	return envOr("IMS_API_URL", DefaultAPIURL)
}

func ShopifyAPIVersion() string {
	return envOr("SHOPIFY_API_VERSION", DefaultShopifyAPIVersion)
}

func AlertsTopicARN() string {
	return strings.TrimSpace(os.Getenv("ALERTS_TOPIC_ARN"))
}

func LogLevel() string {
	return envOr("LOG_LEVEL", "info")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
