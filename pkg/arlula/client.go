package arlula

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultAPIEndpoint is the production API host.
const DefaultAPIEndpoint = "https://api.arlula.com"

// Client is the API root. Every facade shares one transport.
type Client interface {
	// Test verifies the configured credentials against the API.
	Test(ctx context.Context) error

	Archive() ArchiveClient
	Tasking() TaskingClient
	Orders() OrdersClient
	Collections() CollectionsClient
}

// ArchiveClient searches and orders existing imagery.
type ArchiveClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	Order(ctx context.Context, req OrderRequest) (*Order, error)
	BatchOrder(ctx context.Context, req BatchOrderRequest) (*Order, error)
}

// TaskingClient searches and orders future captures.
type TaskingClient interface {
	Search(ctx context.Context, req TaskingSearchRequest) (*TaskingSearchResponse, error)
	Order(ctx context.Context, req TaskingOrderRequest) (*Order, error)
	BatchOrder(ctx context.Context, req TaskingBatchOrderRequest) (*Order, error)
}

// OrdersClient retrieves orders and the campaigns, datasets and resources they produce.
type OrdersClient interface {
	Loader

	List(ctx context.Context, page int) (*ListResponse[*Order], error)
	Get(ctx context.Context, id string) (*Order, error)
	ListCampaigns(ctx context.Context, page int) (*ListResponse[*Campaign], error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListDatasets(ctx context.Context, page int) (*ListResponse[*Dataset], error)
	GetDataset(ctx context.Context, id string) (*Dataset, error)
	GetResource(ctx context.Context, id string) (*Resource, error)
	// DownloadResource streams a resource's content to w and returns the bytes written.
	DownloadResource(ctx context.Context, id string, w io.Writer) (int64, error)
}

// CollectionsClient manages STAC collections of ordered datasets.
type CollectionsClient interface {
	List(ctx context.Context) (*CollectionList, error)
	Get(ctx context.Context, id string) (*Collection, error)
	Create(ctx context.Context, req CollectionCreateRequest) (*Collection, error)
	Update(ctx context.Context, id string, req CollectionUpdateRequest) (*Collection, error)
	Delete(ctx context.Context, id string) error
	ListItems(ctx context.Context, id string, page int) (*ItemCollection, error)
	GetItem(ctx context.Context, collection, item string) (*Item, error)
	AddItem(ctx context.Context, collection string, req ItemAddRequest) (*Item, error)
	RemoveItem(ctx context.Context, collection, item string) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an arlula.Client.
// There is no process-wide host setting; each client carries its own endpoint.
type Config struct {
	// APIEndpoint: base URL of the API. Defaults to DefaultAPIEndpoint.
	// arlulaclient.New trims a trailing slash and adds "https://" if no scheme is present.
	APIEndpoint string

	// APIKey and APISecret are sent as HTTP Basic credentials on every request.
	APIKey    string
	APISecret string

	// HTTPTimeout bounds each request. Zero uses the transport default.
	HTTPTimeout time.Duration
	// RetryMax enables retries of transient failures (>=500, 429, connection
	// errors). Zero, the default, never retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Cache: optional response cache for GET requests.
	Cache *CacheConfig
	// MetricsRegisterer: when set, request counters and latency histograms are registered on it.
	MetricsRegisterer prometheus.Registerer
}
