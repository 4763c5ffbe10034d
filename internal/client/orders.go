package client

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/http"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// OrdersClient implements arlula.OrdersClient. It is also the arlula.Loader
// behind every entity it decodes.
type OrdersClient struct {
	httpClient *http.Client
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *http.Client) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
	}
}

// List implements arlula.OrdersClient.List.
func (c *OrdersClient) List(ctx context.Context, page int) (*arlula.ListResponse[*arlula.Order], error) {
	resp, err := get(ctx, c.httpClient, constants.PathOrderList, constants.PathOrderList, pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	result, err := decodeBody(resp, listOf(arlula.OrderDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing orders list response: %w", err)
	}

	return result, nil
}

// Get implements arlula.OrdersClient.Get.
func (c *OrdersClient) Get(ctx context.Context, id string) (*arlula.Order, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, constants.PathOrder+url.PathEscape(id), constants.RouteOrder, nil)
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}

	order, err := decodeBody(resp, arlula.OrderDecoder(c))
	if err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return order, nil
}

// ListCampaigns implements arlula.OrdersClient.ListCampaigns.
func (c *OrdersClient) ListCampaigns(ctx context.Context, page int) (*arlula.ListResponse[*arlula.Campaign], error) {
	resp, err := get(ctx, c.httpClient, constants.PathCampaignList, constants.PathCampaignList, pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}

	result, err := decodeBody(resp, listOf(arlula.CampaignDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing campaigns list response: %w", err)
	}

	return result, nil
}

// GetCampaign implements arlula.OrdersClient.GetCampaign.
func (c *OrdersClient) GetCampaign(ctx context.Context, id string) (*arlula.Campaign, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, constants.PathCampaign+url.PathEscape(id), constants.RouteCampaign, nil)
	if err != nil {
		return nil, fmt.Errorf("getting campaign: %w", err)
	}

	campaign, err := decodeBody(resp, arlula.CampaignDecoder(c))
	if err != nil {
		return nil, fmt.Errorf("parsing campaign response: %w", err)
	}

	return campaign, nil
}

// ListDatasets implements arlula.OrdersClient.ListDatasets.
func (c *OrdersClient) ListDatasets(ctx context.Context, page int) (*arlula.ListResponse[*arlula.Dataset], error) {
	resp, err := get(ctx, c.httpClient, constants.PathDatasetList, constants.PathDatasetList, pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	result, err := decodeBody(resp, listOf(arlula.DatasetDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing datasets list response: %w", err)
	}

	return result, nil
}

// GetDataset implements arlula.OrdersClient.GetDataset.
func (c *OrdersClient) GetDataset(ctx context.Context, id string) (*arlula.Dataset, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, constants.PathDataset+url.PathEscape(id), constants.RouteDataset, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset: %w", err)
	}

	dataset, err := decodeBody(resp, arlula.DatasetDecoder(c))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	return dataset, nil
}

// GetResource implements arlula.OrdersClient.GetResource.
func (c *OrdersClient) GetResource(ctx context.Context, id string) (*arlula.Resource, error) {
	if id == "" {
		return nil, arlula.ErrIDRequired
	}

	resp, err := get(ctx, c.httpClient, constants.PathResource+url.PathEscape(id), constants.RouteResource, nil)
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}

	resource, err := decodeBody(resp, arlula.DecodeResource)
	if err != nil {
		return nil, fmt.Errorf("parsing resource response: %w", err)
	}

	return resource, nil
}

// DownloadResource implements arlula.OrdersClient.DownloadResource.
func (c *OrdersClient) DownloadResource(ctx context.Context, id string, w io.Writer) (int64, error) {
	if id == "" {
		return 0, arlula.ErrIDRequired
	}

	written, err := c.httpClient.Stream(ctx, constants.PathResource+url.PathEscape(id)+constants.SuffixData, constants.RouteResourceData, w)
	if err != nil {
		return written, fmt.Errorf("downloading resource: %w", err)
	}

	return written, nil
}

// OrderCampaigns implements arlula.Loader.OrderCampaigns.
func (c *OrdersClient) OrderCampaigns(ctx context.Context, orderID string) ([]*arlula.Campaign, error) {
	path := constants.PathOrder + url.PathEscape(orderID) + constants.SuffixCampaigns

	resp, err := get(ctx, c.httpClient, path, constants.RouteOrderCampaigns, nil)
	if err != nil {
		return nil, fmt.Errorf("getting order campaigns: %w", err)
	}

	campaigns, err := decodeBody(resp, arrayOf(arlula.CampaignDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing order campaigns response: %w", err)
	}

	return campaigns, nil
}

// OrderDatasets implements arlula.Loader.OrderDatasets.
func (c *OrdersClient) OrderDatasets(ctx context.Context, orderID string) ([]*arlula.Dataset, error) {
	path := constants.PathOrder + url.PathEscape(orderID) + constants.SuffixDatasets

	resp, err := get(ctx, c.httpClient, path, constants.RouteOrderDatasets, nil)
	if err != nil {
		return nil, fmt.Errorf("getting order datasets: %w", err)
	}

	datasets, err := decodeBody(resp, arrayOf(arlula.DatasetDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing order datasets response: %w", err)
	}

	return datasets, nil
}

// CampaignDatasets implements arlula.Loader.CampaignDatasets.
func (c *OrdersClient) CampaignDatasets(ctx context.Context, campaignID string) ([]*arlula.Dataset, error) {
	path := constants.PathCampaign + url.PathEscape(campaignID) + constants.SuffixDatasets

	resp, err := get(ctx, c.httpClient, path, constants.RouteCampaignDatasets, nil)
	if err != nil {
		return nil, fmt.Errorf("getting campaign datasets: %w", err)
	}

	datasets, err := decodeBody(resp, arrayOf(arlula.DatasetDecoder(c)))
	if err != nil {
		return nil, fmt.Errorf("parsing campaign datasets response: %w", err)
	}

	return datasets, nil
}

// DatasetResources implements arlula.Loader.DatasetResources. Resources come
// embedded in the dataset detail response.
func (c *OrdersClient) DatasetResources(ctx context.Context, datasetID string) ([]*arlula.Resource, error) {
	resp, err := get(ctx, c.httpClient, constants.PathDataset+url.PathEscape(datasetID), constants.RouteDataset, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset resources: %w", err)
	}

	dataset, err := decodeBody(resp, arlula.DatasetDecoder(nil))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	if !dataset.Detailed() {
		return []*arlula.Resource{}, nil
	}

	return dataset.Resources(ctx)
}

func listOf[T any](decode func(any) (T, error)) func(any) (*arlula.ListResponse[T], error) {
	return func(raw any) (*arlula.ListResponse[T], error) {
		return arlula.ParseListResponse(raw, decode)
	}
}

func arrayOf[T any](decode func(any) (T, error)) func(any) ([]T, error) {
	return func(raw any) ([]T, error) {
		return decodeArray(raw, decode)
	}
}
