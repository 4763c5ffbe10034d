package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/arlula-client/internal/auth"
	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrConfigRequired      = errors.New("config is required")
)

// Client implements the arlula.Client interface.
type Client struct {
	httpClient *http.Client

	archive     *ArchiveClient
	tasking     *TaskingClient
	orders      *OrdersClient
	collections *CollectionsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *arlula.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil && config.Cache.Type != arlula.CacheTypeNone {
		cache, err := arlula.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}

		httpOpts = append(httpOpts, http.WithCache(arlula.NewCacheManager(cache, config.Cache.Options)))
	}

	if config.MetricsRegisterer != nil {
		httpOpts = append(httpOpts, http.WithMetrics(config.MetricsRegisterer))
	}

	return httpOpts, nil
}

// New creates an API client from config. The endpoint must already be
// normalized; credentials are required.
func New(_ context.Context, config *arlula.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	authenticator, err := auth.NewBasicAuthenticator(config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("configuring credentials: %w", err)
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	return NewWithHTTPClient(http.NewClient(config.APIEndpoint, authenticator, httpOpts...)), nil
}

// NewWithHTTPClient wires every facade onto an existing transport.
func NewWithHTTPClient(httpClient *http.Client) *Client {
	orders := NewOrdersClient(httpClient)

	return &Client{
		httpClient:  httpClient,
		archive:     NewArchiveClient(httpClient, orders),
		tasking:     NewTaskingClient(httpClient, orders),
		orders:      orders,
		collections: NewCollectionsClient(httpClient),
	}
}

// Test implements arlula.Client.Test.
func (c *Client) Test(ctx context.Context) error {
	_, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodGet,
		Path:    constants.PathTest,
		Timeout: constants.ShortHTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("testing credentials: %w", err)
	}

	return nil
}

// Archive implements arlula.Client.Archive.
func (c *Client) Archive() arlula.ArchiveClient {
	return c.archive
}

// Tasking implements arlula.Client.Tasking.
func (c *Client) Tasking() arlula.TaskingClient {
	return c.tasking
}

// Orders implements arlula.Client.Orders.
func (c *Client) Orders() arlula.OrdersClient {
	return c.orders
}

// Collections implements arlula.Client.Collections.
func (c *Client) Collections() arlula.CollectionsClient {
	return c.collections
}

// get issues a GET labelled with route for metrics.
func get(ctx context.Context, httpClient *http.Client, path, route string, query url.Values) (*http.Response, error) {
	return httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodGet,
		Path:   path,
		Route:  route,
		Query:  query,
	})
}

func pageQuery(page int) url.Values {
	if page <= 0 {
		return nil
	}

	return url.Values{"page": []string{strconv.Itoa(page)}}
}

// decodeBody parses a response body and hands it to an entity decoder.
func decodeBody[T any](resp *http.Response, decode func(any) (T, error)) (T, error) {
	var zero T

	raw, err := arlula.DecodeJSON(resp.Body)
	if err != nil {
		return zero, err
	}

	return decode(raw)
}

// decodeArray decodes a bare array of entities. A list envelope is accepted too.
func decodeArray[T any](raw any, decode func(any) (T, error)) ([]T, error) {
	if _, ok := raw.(map[string]any); ok {
		list, err := arlula.ParseListResponse(raw, decode)
		if err != nil {
			return nil, err
		}

		return list.Content, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, arlula.ErrUnexpectedResponsePayload
	}

	result := make([]T, 0, len(items))

	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		result = append(result, v)
	}

	return result, nil
}
