package arlula

import (
	"context"
	"time"

	"github.com/paulmach/orb"
)

// Campaign is a tasking request over a capture window. Datasets accrue as
// captures complete.
type Campaign struct {
	ID         string      `json:"id"             yaml:"id"`
	CreatedAt  time.Time   `json:"createdAt"      yaml:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"      yaml:"updatedAt"`
	Status     Status      `json:"status"         yaml:"status"`
	OrderingID string      `json:"orderingID"     yaml:"orderingID"`
	Bundle     string      `json:"bundle"         yaml:"bundle"`
	License    string      `json:"license"        yaml:"license"`
	Priority   string      `json:"priority"       yaml:"priority"`
	Total      int64       `json:"total"          yaml:"total"`
	Discount   int64       `json:"discount"       yaml:"discount"`
	Tax        int64       `json:"tax"            yaml:"tax"`
	Refunded   int64       `json:"refunded"       yaml:"refunded"`
	Order      string      `json:"order"          yaml:"order"`
	Site       string      `json:"site,omitempty" yaml:"site,omitempty"`
	Start      time.Time   `json:"start"          yaml:"start"`
	End        time.Time   `json:"end"            yaml:"end"`
	AOI        orb.Polygon `json:"aoi"            yaml:"aoi"`
	Cloud      float64     `json:"cloud"          yaml:"cloud"`
	OffNadir   float64     `json:"offNadir"       yaml:"offNadir"`
	Supplier   string      `json:"supplier"       yaml:"supplier"`
	Platforms  []string    `json:"platforms"      yaml:"platforms"`
	GSD        float64     `json:"gsd"            yaml:"gsd"`

	datasets *lazyList[*Dataset]
	loader   Loader
}

// DatasetsLoaded reports whether the campaign's datasets are cached.
func (c *Campaign) DatasetsLoaded() bool {
	_, ok := c.datasets.cached()

	return ok
}

// Datasets returns the datasets captured so far, fetching them once on first use.
func (c *Campaign) Datasets(ctx context.Context) ([]*Dataset, error) {
	if items, ok := c.datasets.cached(); ok {
		return items, nil
	}

	if c.loader == nil {
		return nil, ErrNoLoader
	}

	return c.datasets.get(ctx, func(ctx context.Context) ([]*Dataset, error) {
		return c.loader.CampaignDatasets(ctx, c.ID)
	})
}

// CampaignDecoder returns a decoder whose campaigns fetch through loader.
func CampaignDecoder(loader Loader) func(any) (*Campaign, error) {
	return func(raw any) (*Campaign, error) {
		return DecodeCampaign(raw, loader)
	}
}

// DecodeCampaign decodes a tasking campaign.
//
//nolint:funlen,cyclop,gocognit // field-by-field decode
func DecodeCampaign(raw any, loader Loader) (*Campaign, error) {
	o, err := asObject("campaign", raw)
	if err != nil {
		return nil, err
	}

	campaign := &Campaign{loader: loader}

	if campaign.ID, err = o.id("id"); err != nil {
		return nil, err
	}

	if campaign.CreatedAt, err = o.time("createdAt"); err != nil {
		return nil, err
	}

	if campaign.UpdatedAt, err = o.time("updatedAt"); err != nil {
		return nil, err
	}

	if campaign.Status, err = decodeStatus(o, "status"); err != nil {
		return nil, err
	}

	if campaign.OrderingID, err = o.id("orderingID"); err != nil {
		return nil, err
	}

	if campaign.Bundle, err = o.id("bundle"); err != nil {
		return nil, err
	}

	if campaign.License, err = o.id("license"); err != nil {
		return nil, err
	}

	if campaign.Priority, err = o.id("priority"); err != nil {
		return nil, err
	}

	if campaign.Total, err = o.integer("total"); err != nil {
		return nil, err
	}

	if campaign.Discount, err = o.integer("discount"); err != nil {
		return nil, err
	}

	if campaign.Tax, err = o.integer("tax"); err != nil {
		return nil, err
	}

	if campaign.Refunded, err = o.integer("refunded"); err != nil {
		return nil, err
	}

	if campaign.Order, err = o.id("order"); err != nil {
		return nil, err
	}

	if campaign.Start, err = o.time("start"); err != nil {
		return nil, err
	}

	if campaign.End, err = o.time("end"); err != nil {
		return nil, err
	}

	if !o.has("aoi") {
		return nil, o.missing("aoi")
	}

	if campaign.AOI, err = DecodePolygon(o.fields["aoi"]); err != nil {
		return nil, o.invalid("aoi", err.Error())
	}

	if campaign.Cloud, err = o.num("cloud"); err != nil {
		return nil, err
	}

	if campaign.OffNadir, err = o.num("offNadir"); err != nil {
		return nil, err
	}

	if campaign.Supplier, err = o.id("supplier"); err != nil {
		return nil, err
	}

	if campaign.Platforms, err = o.strings("platforms"); err != nil {
		return nil, err
	}

	if campaign.GSD, err = o.num("gsd"); err != nil {
		return nil, err
	}

	if campaign.Site, err = o.optStr("site"); err != nil {
		return nil, err
	}

	datasets, err := optList(o, "datasets", DatasetDecoder(loader))
	if err != nil {
		return nil, err
	}

	campaign.datasets = newLazyList(datasets)

	return campaign, nil
}
