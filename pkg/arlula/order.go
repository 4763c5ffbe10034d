package arlula

import (
	"context"
	"time"
)

// Order is a server-assigned purchase. Its campaigns and datasets are loaded
// lazily unless the server embedded them.
type Order struct {
	ID        string    `json:"id"                yaml:"id"`
	CreatedAt time.Time `json:"createdAt"         yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"         yaml:"updatedAt"`
	Status    Status    `json:"status"            yaml:"status"`
	Total     int64     `json:"total"             yaml:"total"`
	Discount  int64     `json:"discount"          yaml:"discount"`
	Tax       int64     `json:"tax"               yaml:"tax"`
	Refunded  int64     `json:"refunded"          yaml:"refunded"`
	Monitor   string    `json:"monitor,omitempty" yaml:"monitor,omitempty"`

	campaigns *lazyList[*Campaign]
	datasets  *lazyList[*Dataset]
	loader    Loader
}

// CampaignsLoaded reports whether the order's campaigns are cached.
func (o *Order) CampaignsLoaded() bool {
	_, ok := o.campaigns.cached()

	return ok
}

// DatasetsLoaded reports whether the order's datasets are cached.
func (o *Order) DatasetsLoaded() bool {
	_, ok := o.datasets.cached()

	return ok
}

// Campaigns returns the order's tasking campaigns, fetching them once on first use.
func (o *Order) Campaigns(ctx context.Context) ([]*Campaign, error) {
	if items, ok := o.campaigns.cached(); ok {
		return items, nil
	}

	if o.loader == nil {
		return nil, ErrNoLoader
	}

	return o.campaigns.get(ctx, func(ctx context.Context) ([]*Campaign, error) {
		return o.loader.OrderCampaigns(ctx, o.ID)
	})
}

// Datasets returns the order's datasets, fetching them once on first use.
func (o *Order) Datasets(ctx context.Context) ([]*Dataset, error) {
	if items, ok := o.datasets.cached(); ok {
		return items, nil
	}

	if o.loader == nil {
		return nil, ErrNoLoader
	}

	return o.datasets.get(ctx, func(ctx context.Context) ([]*Dataset, error) {
		return o.loader.OrderDatasets(ctx, o.ID)
	})
}

// OrderDecoder returns a decoder whose orders fetch through loader.
func OrderDecoder(loader Loader) func(any) (*Order, error) {
	return func(raw any) (*Order, error) {
		return DecodeOrder(raw, loader)
	}
}

// DecodeOrder decodes an order, including any embedded campaigns and datasets.
//
//nolint:cyclop // field-by-field decode
func DecodeOrder(raw any, loader Loader) (*Order, error) {
	obj, err := asObject("order", raw)
	if err != nil {
		return nil, err
	}

	order := &Order{loader: loader}

	if order.ID, err = obj.id("id"); err != nil {
		return nil, err
	}

	if order.CreatedAt, err = obj.time("createdAt"); err != nil {
		return nil, err
	}

	if order.UpdatedAt, err = obj.time("updatedAt"); err != nil {
		return nil, err
	}

	if order.Status, err = decodeStatus(obj, "status"); err != nil {
		return nil, err
	}

	if order.Total, err = obj.integer("total"); err != nil {
		return nil, err
	}

	if order.Discount, err = obj.integer("discount"); err != nil {
		return nil, err
	}

	if order.Tax, err = obj.integer("tax"); err != nil {
		return nil, err
	}

	if order.Refunded, err = obj.optInteger("refunded"); err != nil {
		return nil, err
	}

	if order.Monitor, err = obj.optStr("monitor"); err != nil {
		return nil, err
	}

	campaigns, err := optList(obj, "campaigns", CampaignDecoder(loader))
	if err != nil {
		return nil, err
	}

	datasets, err := optList(obj, "datasets", DatasetDecoder(loader))
	if err != nil {
		return nil, err
	}

	order.campaigns = newLazyList(campaigns)
	order.datasets = newLazyList(datasets)

	return order, nil
}
