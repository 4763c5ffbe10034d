package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// ArchiveClient implements arlula.ArchiveClient.
type ArchiveClient struct {
	httpClient *http.Client
	loader     arlula.Loader
}

// NewArchiveClient creates a new archive client. Orders it returns fetch
// their campaigns and datasets through loader.
func NewArchiveClient(httpClient *http.Client, loader arlula.Loader) *ArchiveClient {
	return &ArchiveClient{
		httpClient: httpClient,
		loader:     loader,
	}
}

// Search implements arlula.ArchiveClient.Search.
func (c *ArchiveClient) Search(ctx context.Context, req arlula.SearchRequest) (*arlula.SearchResponse, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidSearchRequest
	}

	resp, err := c.httpClient.Get(ctx, constants.PathArchiveSearch, req.Query())
	if err != nil {
		return nil, fmt.Errorf("searching archive: %w", err)
	}

	result, err := decodeBody(resp, arlula.DecodeSearchResponse)
	if err != nil {
		return nil, fmt.Errorf("parsing archive search response: %w", err)
	}

	return result, nil
}

// Order implements arlula.ArchiveClient.Order.
func (c *ArchiveClient) Order(ctx context.Context, req arlula.OrderRequest) (*arlula.Order, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidOrderRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathArchiveOrder, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("ordering archive scene: %w", err)
	}

	order, err := decodeBody(resp, arlula.OrderDecoder(c.loader))
	if err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return order, nil
}

// BatchOrder implements arlula.ArchiveClient.BatchOrder.
func (c *ArchiveClient) BatchOrder(ctx context.Context, req arlula.BatchOrderRequest) (*arlula.Order, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidBatchOrderRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathArchiveBatchOrder, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("batch ordering archive scenes: %w", err)
	}

	order, err := decodeBody(resp, arlula.OrderDecoder(c.loader))
	if err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return order, nil
}
