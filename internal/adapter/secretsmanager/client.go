// Package secretsmanager reads connection strings from AWS Secrets Manager.
package secretsmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// API is the subset of the Secrets Manager client used by Client.
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var _ API = (*secretsmanager.Client)(nil)

// Client resolves secrets by name.
type Client struct {
	api API
}

// New wraps an existing API implementation.
func New(api API) *Client {
	return &Client{api: api}
}

// NewFromConfig builds a Client from the default AWS credentials chain.
// VaultURL, when set, replaces the service endpoint.
func NewFromConfig(ctx context.Context, cfg config.SecretsConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("secretsmanager: load aws config: %w", err)
	}

	api := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.VaultURL != "" {
			o.BaseEndpoint = aws.String(cfg.VaultURL)
		}
	})

	return New(api), nil
}

// GetSecret returns the current value of the named secret.
// Binary secrets are returned as their raw bytes.
func (c *Client) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("secretsmanager: %q: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("secretsmanager: get %q: %w", name, err)
	}

	if out.SecretString != nil {
		return aws.ToString(out.SecretString), nil
	}
	return string(out.SecretBinary), nil
}
