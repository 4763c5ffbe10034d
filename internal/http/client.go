// Package http is the transport used by the API facades. It executes
// requests with Basic credentials, maps failed responses to
// *arlula.ResponseError, and optionally retries, caches GET responses and
// records Prometheus metrics.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// Authenticator supplies the Authorization header for a request.
type Authenticator interface {
	Authorization(ctx context.Context) (string, error)
}

// Request is a single API call.
type Request struct {
	Method string
	Path   string
	// Route is the path template used as the metrics label. Path is used when empty.
	Route   string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
	// Timeout overrides the client timeout for this request.
	Timeout time.Duration
}

// Response is a completed API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes API requests.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	auth       Authenticator
	logger     arlula.Logger
	debug      bool
	userAgent  string
	timeout    time.Duration
	cache      *arlula.CacheManager
	metrics    *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger arlula.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs every request and response when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig retries transient failures (>=500, 429, connection errors)
// up to maxRetries times with exponential backoff. Clients never retry
// without it.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCache serves repeated GET requests through manager. Entries are scoped
// to the credentials that fetched them and live for the manager's TTL.
func WithCache(manager *arlula.CacheManager) Option {
	return func(c *Client) {
		c.cache = manager
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg != nil {
			c.metrics = newMetrics(reg)
		}
	}
}

// NewClient creates a client for the API rooted at baseURL. A nil
// authenticator sends unauthenticated requests.
func NewClient(baseURL string, authenticator Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		auth:       authenticator,
		userAgent:  constants.DefaultUserAgent,
		timeout:    constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes req. Non-2xx responses return both the response and an
// *arlula.ResponseError.
//
//nolint:funlen,cyclop // request pipeline
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	authorization, err := c.authorization(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := ""
	if c.cache != nil && req.Method == http.MethodGet {
		cacheKey = c.cache.GetScopedCacheKey(req.Method, c.baseURL+req.Path, authorization, cacheParams(req.Query))

		data, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			c.metrics.cacheResult("hit")
			c.logDebug("HTTP Cache Hit", map[string]interface{}{"method": req.Method, "url": fullURL})

			return &Response{StatusCode: http.StatusOK, Headers: http.Header{}, Body: data}, nil
		}

		c.metrics.cacheResult("miss")
	}

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if authorization != "" {
		httpReq.Header.Set("Authorization", authorization)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    fullURL,
		"body":   string(body),
	})

	route := req.Route
	if route == "" {
		route = req.Path
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, route, 0, time.Since(start).Seconds())

		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	elapsed := time.Since(start)
	c.metrics.observe(req.Method, route, resp.StatusCode, elapsed.Seconds())

	c.logDebug("HTTP Response", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": elapsed.String(),
		"body":     string(data),
	})

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return response, arlula.ParseResponseError(resp.StatusCode, data)
	}

	if cacheKey != "" {
		if err := c.cache.SetWithETag(ctx, cacheKey, data, resp.Header.Get("ETag"), 0); err != nil {
			c.logDebug("HTTP Cache Store Failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Stream downloads path into w, following redirects to the storage host.
// It is never cached and never bounded by the client timeout; use ctx.
// Route labels the metrics; path is used when empty.
func (c *Client) Stream(ctx context.Context, path, route string, w io.Writer) (int64, error) {
	authorization, err := c.authorization(ctx)
	if err != nil {
		return 0, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)

	if authorization != "" {
		httpReq.Header.Set("Authorization", authorization)
	}

	c.logDebug("HTTP Request", map[string]interface{}{"method": http.MethodGet, "url": c.baseURL + path})

	if route == "" {
		route = path
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(http.MethodGet, route, 0, time.Since(start).Seconds())

		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.observe(http.MethodGet, route, resp.StatusCode, time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxErrorBodySize))

		return 0, arlula.ParseResponseError(resp.StatusCode, data)
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return written, fmt.Errorf("copying response body: %w", err)
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
		"bytes":    written,
	})

	return written, nil
}

func (c *Client) authorization(ctx context.Context) (string, error) {
	if c.auth == nil {
		return "", nil
	}

	authorization, err := c.auth.Authorization(ctx)
	if err != nil {
		return "", fmt.Errorf("getting credentials: %w", err)
	}

	return authorization, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

// CacheStats returns the response cache counters, or nil without a cache.
func (c *Client) CacheStats() *arlula.CacheStats {
	if c.cache == nil {
		return nil
	}

	return c.cache.GetStats()
}

// cacheParams flattens a query for cache key derivation. Repeated values are
// joined with a byte that cannot appear in an encoded query.
func cacheParams(query url.Values) map[string]string {
	if len(query) == 0 {
		return nil
	}

	params := make(map[string]string, len(query))
	for name, values := range query {
		params[name] = strings.Join(values, "\x00")
	}

	return params
}

func bodyReader(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}
