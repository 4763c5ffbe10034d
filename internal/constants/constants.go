package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// DownloadFilePerm is the permission for downloaded resources.
	DownloadFilePerm = 0640
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for credential checks.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "arlula-go/1.0.0"

	// MaxErrorBodySize caps how much of a failed download is read for the error message.
	MaxErrorBodySize = 64 * 1024
)

// Retry limits applied when retries are enabled.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// API paths. Paths ending in a slash take an id suffix.
const (
	PathTest = "/api/test"

	PathArchiveSearch     = "/api/archive/search"
	PathArchiveOrder      = "/api/archive/order"
	PathArchiveBatchOrder = "/api/archive/order/batch"

	PathTaskingSearch     = "/api/tasking/search"
	PathTaskingOrder      = "/api/tasking/order"
	PathTaskingBatchOrder = "/api/tasking/order/batch"

	PathOrderList    = "/api/order/list"
	PathOrder        = "/api/order/"
	PathCampaignList = "/api/order/campaign/list"
	PathCampaign     = "/api/order/campaign/"
	PathDatasetList  = "/api/order/dataset/list"
	PathDataset      = "/api/order/dataset/"
	PathResource     = "/api/order/resource/"

	SuffixCampaigns = "/campaigns"
	SuffixDatasets  = "/datasets"
	SuffixData      = "/data"

	PathCollections = "/api/collections"
	SuffixItems     = "/items"
)

// Metrics route labels for paths carrying ids.
const (
	RouteOrder            = "/api/order/{id}"
	RouteOrderCampaigns   = "/api/order/{id}/campaigns"
	RouteOrderDatasets    = "/api/order/{id}/datasets"
	RouteCampaign         = "/api/order/campaign/{id}"
	RouteCampaignDatasets = "/api/order/campaign/{id}/datasets"
	RouteDataset          = "/api/order/dataset/{id}"
	RouteResource         = "/api/order/resource/{id}"
	RouteResourceData     = "/api/order/resource/{id}/data"
	RouteCollection       = "/api/collections/{id}"
	RouteCollectionItems  = "/api/collections/{id}/items"
	RouteCollectionItem   = "/api/collections/{id}/items/{item}"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// DateFormat is the layout accepted by date flags.
	DateFormat = "2006-01-02"

	// TimestampFormat is the layout used when printing timestamps.
	TimestampFormat = "2006-01-02 15:04"

	// CentsPerUnit converts minor currency units for display.
	CentsPerUnit = 100.0
)
