package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
)

// Config is everything a handler needs from its environment.
type Config struct {
	ClientID              string
	ClientSecret          string
	ClientSecretParameter string
	APIKey                string
	AuthURL               string
	APIURL                string
	ShopifyAPIVersion     string
	AlertsTopicARN        string
	LogLevel              string
}

type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// FromEnv reads the process environment, loading a local .env file first when one exists.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		ClientID:              ClientID(),
		ClientSecret:          ClientSecret(),
		ClientSecretParameter: ClientSecretParameter(),
		APIKey:                APIKey(),
		AuthURL:               AuthURL(),
		APIURL:                APIURL(),
		ShopifyAPIVersion:     ShopifyAPIVersion(),
		AlertsTopicARN:        AlertsTopicARN(),
		LogLevel:              LogLevel(),
	}
}

// Load reads the environment and, when only a parameter name is given,
// fetches the client secret from SSM using the Lambda execution role.
func Load(ctx context.Context) (Config, error) {
	cfg := FromEnv()
	if cfg.ClientSecret != "" || cfg.ClientSecretParameter == "" {
		return cfg, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("load aws config: %w", err)
	}
	if err := cfg.ResolveSecret(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ResolveSecret(ctx context.Context, params ParameterAPI) error {
	if c.ClientSecret != "" || c.ClientSecretParameter == "" {
		return nil
	}

	out, err := params.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.ClientSecretParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("ssm get parameter %s: %w", c.ClientSecretParameter, err)
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return fmt.Errorf("ssm parameter %s is empty", c.ClientSecretParameter)
	}
	c.ClientSecret = strings.TrimSpace(aws.ToString(out.Parameter.Value))
	return nil
}

// Validate reports every missing IMS credential at once.
func (c Config) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("ClientId not set"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("ClientSecret not set"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("ApiKey not set"))
	}
	return errors.Join(errs...)
}
