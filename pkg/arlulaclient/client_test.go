package arlulaclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
	"github.com/fivetwenty-io/arlula-client/pkg/arlulaclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := arlulaclient.New(context.Background(), nil)
		require.ErrorIs(t, err, arlula.ErrConfigRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := arlulaclient.New(context.Background(), &arlula.Config{APIKey: "key"})
		require.ErrorIs(t, err, arlula.ErrCredentialsRequired)
	})

	t.Run("does not modify config", func(t *testing.T) {
		t.Parallel()

		config := &arlula.Config{APIEndpoint: "api.example.com/", APIKey: "key", APISecret: "secret"}

		client, err := arlulaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "api.example.com/", config.APIEndpoint)
	})
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	client, err := arlulaclient.NewWithCredentials(context.Background(), "key", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: arlula.DefaultAPIEndpoint},
		{in: "https://api.arlula.com/", want: "https://api.arlula.com"},
		{in: "api.example.com", want: "https://api.example.com"},
		{in: "http://localhost:8080", want: "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, arlulaclient.NormalizeEndpoint(tt.in))
		})
	}
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)

		switch request.URL.Path {
		case "/api/test":
			writer.WriteHeader(http.StatusOK)
		case "/api/collections":
			_, _ = writer.Write([]byte(`{"collections":[]}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()

	client, err := arlulaclient.New(context.Background(), &arlula.Config{
		APIEndpoint:       server.URL + "/",
		APIKey:            "key",
		APISecret:         "secret",
		Cache:             arlula.DefaultCacheConfig(),
		MetricsRegisterer: reg,
	})
	require.NoError(t, err)

	require.NoError(t, client.Test(context.Background()))

	for range 2 {
		list, err := client.Collections().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list.Collections)
	}

	// The second collections listing is served from cache.
	assert.Equal(t, int32(2), hits.Load())

	count, err := testutil.GatherAndCount(reg, "arlula_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
