package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// TaskingClient implements arlula.TaskingClient.
type TaskingClient struct {
	httpClient *http.Client
	loader     arlula.Loader
}

// NewTaskingClient creates a new tasking client.
func NewTaskingClient(httpClient *http.Client, loader arlula.Loader) *TaskingClient {
	return &TaskingClient{
		httpClient: httpClient,
		loader:     loader,
	}
}

// Search implements arlula.TaskingClient.Search.
func (c *TaskingClient) Search(ctx context.Context, req arlula.TaskingSearchRequest) (*arlula.TaskingSearchResponse, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidSearchRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathTaskingSearch, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("searching tasking opportunities: %w", err)
	}

	result, err := decodeBody(resp, arlula.DecodeTaskingSearchResponse)
	if err != nil {
		return nil, fmt.Errorf("parsing tasking search response: %w", err)
	}

	return result, nil
}

// Order implements arlula.TaskingClient.Order.
func (c *TaskingClient) Order(ctx context.Context, req arlula.TaskingOrderRequest) (*arlula.Order, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidOrderRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathTaskingOrder, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("ordering tasking capture: %w", err)
	}

	order, err := decodeBody(resp, arlula.OrderDecoder(c.loader))
	if err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return order, nil
}

// BatchOrder implements arlula.TaskingClient.BatchOrder.
func (c *TaskingClient) BatchOrder(ctx context.Context, req arlula.TaskingBatchOrderRequest) (*arlula.Order, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidBatchOrderRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathTaskingBatchOrder, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("batch ordering tasking captures: %w", err)
	}

	order, err := decodeBody(resp, arlula.OrderDecoder(c.loader))
	if err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return order, nil
}
