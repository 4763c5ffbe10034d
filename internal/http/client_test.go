package http_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arlulahttp "github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

var errAuthUnavailable = errors.New("credentials unavailable")

type staticAuth struct {
	header string
	err    error
}

func (a *staticAuth) Authorization(ctx context.Context) (string, error) {
	return a.header, a.err
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/order/list", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "Basic a2V5OnNlY3JldA==", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			_, _ = writer.Write([]byte(`{"page":0,"length":0,"count":0,"content":[]}`))
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, &staticAuth{header: "Basic a2V5OnNlY3JldA=="})

		resp, err := client.Do(context.Background(), &arlulahttp.Request{
			Method: http.MethodGet,
			Path:   "/api/order/list",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"page":0,"length":0,"count":0,"content":[]}`, string(resp.Body))
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "2024-01-02", request.URL.Query().Get("start"))
			assert.Equal(t, "0.7", request.URL.Query().Get("gsd"))

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		query := url.Values{}
		query.Set("start", "2024-01-02")
		query.Set("gsd", "0.7")

		_, err := client.Get(context.Background(), "/api/archive/search", query)
		require.NoError(t, err)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Equal(t, "ord-1", body["id"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/api/archive/order", map[string]string{"id": "ord-1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("custom headers and user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "arlula-test/0.1", request.Header.Get("User-Agent"))

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithUserAgent("arlula-test/0.1"))

		_, err := client.Do(context.Background(), &arlulahttp.Request{
			Method:  http.MethodGet,
			Path:    "/api/test",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message":"order not found"}`))
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/api/order/missing", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var respErr *arlula.ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
		assert.Equal(t, "order not found", respErr.Message)
		assert.True(t, arlula.IsNotFound(err))
	})

	t.Run("plain text error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte("invalid credentials\n"))
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.Error(t, err)
		assert.True(t, arlula.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("authenticator failure skips the request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, &staticAuth{err: errAuthUnavailable})

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.ErrorIs(t, err, errAuthUnavailable)
		assert.Zero(t, hits.Load())
	})

	t.Run("debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := arlulahttp.NewClient(server.URL, nil,
			arlulahttp.WithLogger(logger),
			arlulahttp.WithDebug(true),
		)

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-request.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithTimeout(20*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.Error(t, err)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	methods := []struct {
		name   string
		method string
		fn     func(*arlulahttp.Client, context.Context, string) (*arlulahttp.Response, error)
	}{
		{
			name:   "GET",
			method: http.MethodGet,
			fn: func(c *arlulahttp.Client, ctx context.Context, path string) (*arlulahttp.Response, error) {
				return c.Get(ctx, path, nil)
			},
		},
		{
			name:   "POST",
			method: http.MethodPost,
			fn: func(c *arlulahttp.Client, ctx context.Context, path string) (*arlulahttp.Response, error) {
				return c.Post(ctx, path, map[string]string{"test": "data"})
			},
		},
		{
			name:   "PUT",
			method: http.MethodPut,
			fn: func(c *arlulahttp.Client, ctx context.Context, path string) (*arlulahttp.Response, error) {
				return c.Put(ctx, path, map[string]string{"test": "data"})
			},
		},
		{
			name:   "PATCH",
			method: http.MethodPatch,
			fn: func(c *arlulahttp.Client, ctx context.Context, path string) (*arlulahttp.Response, error) {
				return c.Patch(ctx, path, map[string]string{"test": "data"})
			},
		},
		{
			name:   "DELETE",
			method: http.MethodDelete,
			fn: func(c *arlulahttp.Client, ctx context.Context, path string) (*arlulahttp.Response, error) {
				return c.Delete(ctx, path)
			},
		},
	}

	for _, testCase := range methods {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := arlulahttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background(), "/api/collections")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/api/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/api/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/api/test", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestClient_Cache(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)

		if request.Method == http.MethodGet {
			_, _ = writer.Write([]byte(`{"id":"col-1"}`))

			return
		}

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := arlulahttp.NewClient(server.URL, &staticAuth{header: "Basic a"},
		arlulahttp.WithCache(arlula.NewCacheManager(arlula.NewMemoryCache(10), nil)),
	)

	first, err := client.Get(context.Background(), "/api/collections/col-1", nil)
	require.NoError(t, err)

	second, err := client.Get(context.Background(), "/api/collections/col-1", nil)
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, int32(1), hits.Load())

	_, err = client.Delete(context.Background(), "/api/collections/col-1")
	require.NoError(t, err)

	_, err = client.Delete(context.Background(), "/api/collections/col-1")
	require.NoError(t, err)

	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_CacheScopedByCredentials(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	manager := arlula.NewCacheManager(arlula.NewMemoryCache(10), nil)

	first := arlulahttp.NewClient(server.URL, &staticAuth{header: "Basic a"}, arlulahttp.WithCache(manager))
	second := arlulahttp.NewClient(server.URL, &staticAuth{header: "Basic b"}, arlulahttp.WithCache(manager))

	_, err := first.Get(context.Background(), "/api/order/list", nil)
	require.NoError(t, err)

	_, err = second.Get(context.Background(), "/api/order/list", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_CacheOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("ETag", `"v1"`)
		_, _ = writer.Write([]byte(`{"collections":[]}`))
	}))
	defer server.Close()

	tests := []struct {
		name     string
		options  *arlula.CacheOptions
		wantETag string
	}{
		{name: "etags kept", options: &arlula.CacheOptions{TTL: time.Minute, KeyPrefix: "team-a", EnableETags: true}, wantETag: `"v1"`},
		{name: "etags dropped", options: &arlula.CacheOptions{TTL: time.Minute, KeyPrefix: "team-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			backend := arlula.NewMemoryCache(10)
			manager := arlula.NewCacheManager(backend, tt.options)
			client := arlulahttp.NewClient(server.URL, &staticAuth{header: "Basic a"}, arlulahttp.WithCache(manager))

			query := url.Values{"page": []string{"2"}}

			_, err := client.Get(ctx, "/api/collections", query)
			require.NoError(t, err)

			_, err = client.Get(ctx, "/api/collections", query)
			require.NoError(t, err)

			stats := client.CacheStats()
			require.NotNil(t, stats)
			assert.Equal(t, int64(1), stats.Hits)
			assert.Equal(t, int64(1), stats.Misses)
			assert.Equal(t, int64(1), stats.Sets)

			key := manager.GetScopedCacheKey(http.MethodGet, server.URL+"/api/collections", "Basic a", map[string]string{"page": "2"})
			entry, err := backend.Get(ctx, "team-a:"+key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantETag, entry.ETag)
			assert.WithinDuration(t, time.Now().Add(time.Minute), entry.ExpiresAt, 5*time.Second)
		})
	}
}

func TestClient_CacheStatsWithoutCache(t *testing.T) {
	t.Parallel()

	assert.Nil(t, arlulahttp.NewClient("http://localhost", nil).CacheStats())
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/order/missing" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	client := arlulahttp.NewClient(server.URL, nil, arlulahttp.WithMetrics(reg))

	_, err := client.Get(context.Background(), "/api/test", nil)
	require.NoError(t, err)

	_, err = client.Do(context.Background(), &arlulahttp.Request{
		Method: http.MethodGet,
		Path:   "/api/order/missing",
		Route:  "/api/order/{id}",
	})
	require.Error(t, err)

	expected := `
# HELP arlula_client_requests_total Total number of API requests.
# TYPE arlula_client_requests_total counter
arlula_client_requests_total{method="GET",route="/api/order/{id}",status="404"} 1
arlula_client_requests_total{method="GET",route="/api/test",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected), "arlula_client_requests_total"))
}

func TestClient_Stream(t *testing.T) {
	t.Parallel()
	t.Run("follows redirect and copies body", func(t *testing.T) {
		t.Parallel()

		storage := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = io.WriteString(writer, "GeoTIFF bytes")
		}))
		defer storage.Close()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/order/resource/res-1/data", request.URL.Path)
			http.Redirect(writer, request, storage.URL+"/object", http.StatusFound)
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		var buf bytes.Buffer

		written, err := client.Stream(context.Background(), "/api/order/resource/res-1/data", "", &buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len("GeoTIFF bytes")), written)
		assert.Equal(t, "GeoTIFF bytes", buf.String())
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"error":"resource not available"}`))
		}))
		defer server.Close()

		client := arlulahttp.NewClient(server.URL, nil)

		var buf bytes.Buffer

		written, err := client.Stream(context.Background(), "/api/order/resource/res-1/data", "", &buf)
		require.Error(t, err)
		assert.Zero(t, written)
		assert.True(t, arlula.IsForbidden(err))
		assert.Empty(t, buf.String())
	})
}
