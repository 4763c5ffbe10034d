package arlula

import (
	"context"
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Dataset is a single delivered, or in-progress, imagery product.
type Dataset struct {
	ID         string      `json:"id"                   yaml:"id"`
	CreatedAt  time.Time   `json:"createdAt"            yaml:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"            yaml:"updatedAt"`
	Type       DatasetType `json:"type"                 yaml:"type"`
	Status     Status      `json:"status"               yaml:"status"`
	Supplier   string      `json:"supplier"             yaml:"supplier"`
	OrderingID string      `json:"orderingID"           yaml:"orderingID"`
	SceneID    string      `json:"sceneID"              yaml:"sceneID"`
	Bundle     string      `json:"bundle"               yaml:"bundle"`
	EULA       string      `json:"eula"                 yaml:"eula"`
	Total      int64       `json:"total"                yaml:"total"`
	Discount   int64       `json:"discount"             yaml:"discount"`
	Tax        int64       `json:"tax"                  yaml:"tax"`
	Order      string      `json:"order"                yaml:"order"`
	Campaign   string      `json:"campaign,omitempty"   yaml:"campaign,omitempty"`
	AOI        orb.Polygon `json:"aoi"                  yaml:"aoi"`
	Datetime   *time.Time  `json:"datetime,omitempty"   yaml:"datetime,omitempty"`
	Expiration *time.Time  `json:"expiration,omitempty" yaml:"expiration,omitempty"`

	resources *lazyList[*Resource]
	loader    Loader
}

// Detailed reports whether the dataset's resources are known, either embedded
// by the server or fetched since.
func (d *Dataset) Detailed() bool {
	_, ok := d.resources.cached()

	return ok
}

// Resources returns the dataset's resources, fetching them once on first use.
// Datasets that are not complete cannot have resources yet and never fetch.
func (d *Dataset) Resources(ctx context.Context) ([]*Resource, error) {
	items, ok := d.resources.cached()
	if ok || d.Status != StatusComplete {
		return items, nil
	}

	if d.loader == nil {
		return nil, ErrNoLoader
	}

	return d.resources.get(ctx, func(ctx context.Context) ([]*Resource, error) {
		return d.loader.DatasetResources(ctx, d.ID)
	})
}

// DatasetDecoder returns a decoder whose datasets fetch through loader.
func DatasetDecoder(loader Loader) func(any) (*Dataset, error) {
	return func(raw any) (*Dataset, error) {
		return DecodeDataset(raw, loader)
	}
}

// DecodeDataset decodes a dataset. The loader may be nil when resources are
// embedded or never needed.
//
//nolint:funlen,cyclop // field-by-field decode
func DecodeDataset(raw any, loader Loader) (*Dataset, error) {
	o, err := asObject("dataset", raw)
	if err != nil {
		return nil, err
	}

	dataset := &Dataset{loader: loader}

	if dataset.ID, err = o.id("id"); err != nil {
		return nil, err
	}

	if dataset.CreatedAt, err = o.time("createdAt"); err != nil {
		return nil, err
	}

	if dataset.UpdatedAt, err = o.time("updatedAt"); err != nil {
		return nil, err
	}

	kind, err := o.id("type")
	if err != nil {
		return nil, err
	}

	dataset.Type = DatasetType(kind)
	if dataset.Type != DatasetTypeArchive && dataset.Type != DatasetTypeTasking {
		return nil, o.invalid("type", "unknown dataset type "+strconv.Quote(kind))
	}

	if dataset.Status, err = decodeStatus(o, "status"); err != nil {
		return nil, err
	}

	if dataset.Supplier, err = o.id("supplier"); err != nil {
		return nil, err
	}

	if dataset.OrderingID, err = o.id("orderingID"); err != nil {
		return nil, err
	}

	if dataset.SceneID, err = o.str("sceneID"); err != nil {
		return nil, err
	}

	if dataset.Bundle, err = o.id("bundle"); err != nil {
		return nil, err
	}

	if dataset.EULA, err = o.id("eula"); err != nil {
		return nil, err
	}

	if dataset.Total, err = o.integer("total"); err != nil {
		return nil, err
	}

	if dataset.Discount, err = o.integer("discount"); err != nil {
		return nil, err
	}

	if dataset.Tax, err = o.integer("tax"); err != nil {
		return nil, err
	}

	if dataset.Order, err = o.id("order"); err != nil {
		return nil, err
	}

	if !o.has("aoi") {
		return nil, o.missing("aoi")
	}

	if dataset.AOI, err = DecodePolygon(o.fields["aoi"]); err != nil {
		return nil, o.invalid("aoi", err.Error())
	}

	if dataset.Campaign, err = o.optStr("campaign"); err != nil {
		return nil, err
	}

	if dataset.Datetime, err = o.optTime("datetime"); err != nil {
		return nil, err
	}

	if dataset.Expiration, err = o.optTime("expiration"); err != nil {
		return nil, err
	}

	resources, err := optList(o, "resources", DecodeResource)
	if err != nil {
		return nil, err
	}

	dataset.resources = newLazyList(resources)

	return dataset, nil
}
