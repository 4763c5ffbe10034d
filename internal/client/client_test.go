package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/arlula-client/internal/auth"
	"github.com/fivetwenty-io/arlula-client/internal/client"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *arlula.Config
		wantErr error
	}{
		{name: "requires config", config: nil, wantErr: client.ErrConfigRequired},
		{name: "requires API endpoint", config: &arlula.Config{APIKey: "key", APISecret: "secret"}, wantErr: client.ErrAPIEndpointRequired},
		{
			name:    "requires API key",
			config:  &arlula.Config{APIEndpoint: "https://api.example.com", APISecret: "secret"},
			wantErr: auth.ErrMissingAPIKey,
		},
		{
			name:    "requires API secret",
			config:  &arlula.Config{APIEndpoint: "https://api.example.com", APIKey: "key"},
			wantErr: auth.ErrMissingAPISecret,
		},
		{
			name:    "rejects unknown cache type",
			config:  &arlula.Config{APIEndpoint: "https://api.example.com", APIKey: "key", APISecret: "secret", Cache: &arlula.CacheConfig{Type: "disk"}},
			wantErr: arlula.ErrUnsupportedCacheType,
		},
		{
			name:   "creates client with credentials",
			config: &arlula.Config{APIEndpoint: "https://api.example.com", APIKey: "key", APISecret: "secret"},
		},
		{
			name: "creates client with memory cache",
			config: &arlula.Config{
				APIEndpoint: "https://api.example.com",
				APIKey:      "key",
				APISecret:   "secret",
				Cache:       &arlula.CacheConfig{Type: arlula.CacheTypeMemory},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := client.New(context.Background(), tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, c.Archive())
			assert.NotNil(t, c.Tasking())
			assert.NotNil(t, c.Orders())
			assert.NotNil(t, c.Collections())
		})
	}
}

func TestClient_Test(t *testing.T) {
	t.Parallel()
	t.Run("sends basic credentials", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/test", request.URL.Path)

			key, secret, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "key", key)
			assert.Equal(t, "secret", secret)

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c, err := client.New(context.Background(), &arlula.Config{APIEndpoint: server.URL, APIKey: "key", APISecret: "secret"})
		require.NoError(t, err)
		require.NoError(t, c.Test(context.Background()))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message":"invalid credentials"}`))
		})

		err := c.Test(context.Background())
		require.Error(t, err)
		assert.True(t, arlula.IsUnauthorized(err))
	})
}
