package arlulaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/arlula-client/internal/client"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// New creates an API client. The config is copied; the caller's value is
// never modified.
func New(ctx context.Context, config *arlula.Config) (arlula.Client, error) {
	if config == nil {
		return nil, arlula.ErrConfigRequired
	}

	if config.APIKey == "" || config.APISecret == "" {
		return nil, arlula.ErrCredentialsRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithCredentials creates a client for the production API.
func NewWithCredentials(ctx context.Context, key, secret string) (arlula.Client, error) {
	return New(ctx, &arlula.Config{
		APIKey:    key,
		APISecret: secret,
	})
}

// NormalizeEndpoint defaults an empty endpoint, trims a trailing slash and
// adds "https://" when no scheme is given.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return arlula.DefaultAPIEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
