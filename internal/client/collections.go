package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// CollectionsClient implements arlula.CollectionsClient.
type CollectionsClient struct {
	httpClient *http.Client
}

// NewCollectionsClient creates a new collections client.
func NewCollectionsClient(httpClient *http.Client) *CollectionsClient {
	return &CollectionsClient{
		httpClient: httpClient,
	}
}

// List implements arlula.CollectionsClient.List.
func (c *CollectionsClient) List(ctx context.Context) (*arlula.CollectionList, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathCollections, nil)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	result, err := decodeBody(resp, arlula.DecodeCollectionList)
	if err != nil {
		return nil, fmt.Errorf("parsing collections list response: %w", err)
	}

	return result, nil
}

// Get implements arlula.CollectionsClient.Get.
func (c *CollectionsClient) Get(ctx context.Context, id string) (*arlula.Collection, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, collectionPath(id), constants.RouteCollection, nil)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}

	collection, err := decodeBody(resp, arlula.DecodeCollection)
	if err != nil {
		return nil, fmt.Errorf("parsing collection response: %w", err)
	}

	return collection, nil
}

// Create implements arlula.CollectionsClient.Create.
func (c *CollectionsClient) Create(ctx context.Context, req arlula.CollectionCreateRequest) (*arlula.Collection, error) {
	if !req.Valid() {
		return nil, arlula.ErrInvalidCollectionRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.PathCollections, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	collection, err := decodeBody(resp, arlula.DecodeCollection)
	if err != nil {
		return nil, fmt.Errorf("parsing collection response: %w", err)
	}

	return collection, nil
}

// Update implements arlula.CollectionsClient.Update.
func (c *CollectionsClient) Update(ctx context.Context, id string, req arlula.CollectionUpdateRequest) (*arlula.Collection, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	if !req.Valid() {
		return nil, arlula.ErrInvalidCollectionRequest
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPut,
		Path:   collectionPath(id),
		Route:  constants.RouteCollection,
		Body:   req.Payload(),
	})
	if err != nil {
		return nil, fmt.Errorf("updating collection: %w", err)
	}

	collection, err := decodeBody(resp, arlula.DecodeCollection)
	if err != nil {
		return nil, fmt.Errorf("parsing collection response: %w", err)
	}

	return collection, nil
}

// Delete implements arlula.CollectionsClient.Delete.
func (c *CollectionsClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return arlula.ErrIDRequired
	}

	_, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Path:   collectionPath(id),
		Route:  constants.RouteCollection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return nil
}

// ListItems implements arlula.CollectionsClient.ListItems.
func (c *CollectionsClient) ListItems(ctx context.Context, id string, page int) (*arlula.ItemCollection, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, collectionPath(id)+constants.SuffixItems, constants.RouteCollectionItems, pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing collection items: %w", err)
	}

	items, err := decodeBody(resp, arlula.DecodeItemCollection)
	if err != nil {
		return nil, fmt.Errorf("parsing collection items response: %w", err)
	}

	return items, nil
}

// GetItem implements arlula.CollectionsClient.GetItem.
func (c *CollectionsClient) GetItem(ctx context.Context, collection, item string) (*arlula.Item, error) {
	if collection == "" || item == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, itemPath(collection, item), constants.RouteCollectionItem, nil)
	if err != nil {
		return nil, fmt.Errorf("getting collection item: %w", err)
	}

	result, err := decodeBody(resp, arlula.DecodeItem)
	if err != nil {
		return nil, fmt.Errorf("parsing collection item response: %w", err)
	}

	return result, nil
}

// AddItem implements arlula.CollectionsClient.AddItem.
func (c *CollectionsClient) AddItem(ctx context.Context, collection string, req arlula.ItemAddRequest) (*arlula.Item, error) {
	if collection == "" {
		return nil, arlula.ErrIDRequired
	}

	if !req.Valid() {
		return nil, arlula.ErrInvalidItemRequest
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   collectionPath(collection) + constants.SuffixItems,
		Route:  constants.RouteCollectionItems,
		Body:   req.Payload(),
	})
	if err != nil {
		return nil, fmt.Errorf("adding collection item: %w", err)
	}

	result, err := decodeBody(resp, arlula.DecodeItem)
	if err != nil {
		return nil, fmt.Errorf("parsing collection item response: %w", err)
	}

	return result, nil
}

// RemoveItem implements arlula.CollectionsClient.RemoveItem.
func (c *CollectionsClient) RemoveItem(ctx context.Context, collection, item string) error {
	if collection == "" || item == "" {
		return arlula.ErrIDRequired
	}

	_, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Path:   itemPath(collection, item),
		Route:  constants.RouteCollectionItem,
	})
	if err != nil {
		return fmt.Errorf("removing collection item: %w", err)
	}

	return nil
}

func collectionPath(id string) string {
	return constants.PathCollections + "/" + url.PathEscape(id)
}

func itemPath(collection, item string) string {
	return collectionPath(collection) + constants.SuffixItems + "/" + url.PathEscape(item)
}
