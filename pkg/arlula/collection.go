package arlula

import (
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// Link is a STAC relation to another document.
type Link struct {
	Href   string `json:"href"             yaml:"href"`
	Rel    string `json:"rel"              yaml:"rel"`
	Type   string `json:"type,omitempty"   yaml:"type,omitempty"`
	Title  string `json:"title,omitempty"  yaml:"title,omitempty"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
}

// DecodeLink decodes a STAC link.
func DecodeLink(raw any) (Link, error) {
	o, err := asObject("link", raw)
	if err != nil {
		return Link{}, err
	}

	var link Link

	if link.Href, err = o.id("href"); err != nil {
		return Link{}, err
	}

	if link.Rel, err = o.id("rel"); err != nil {
		return Link{}, err
	}

	if link.Type, err = o.optStr("type"); err != nil {
		return Link{}, err
	}

	if link.Title, err = o.optStr("title"); err != nil {
		return Link{}, err
	}

	if link.Method, err = o.optStr("method"); err != nil {
		return Link{}, err
	}

	return link, nil
}

// Asset is a STAC asset. Key is the asset's name in the owning document.
type Asset struct {
	Key         string   `json:"-"                     yaml:"key,omitempty"`
	Href        string   `json:"href"                  yaml:"href"`
	Title       string   `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string   `json:"type,omitempty"        yaml:"type,omitempty"`
	Roles       []string `json:"roles,omitempty"       yaml:"roles,omitempty"`
}

// DecodeAsset decodes a STAC asset.
func DecodeAsset(raw any) (Asset, error) {
	o, err := asObject("asset", raw)
	if err != nil {
		return Asset{}, err
	}

	var asset Asset

	if asset.Href, err = o.id("href"); err != nil {
		return Asset{}, err
	}

	if asset.Title, err = o.optStr("title"); err != nil {
		return Asset{}, err
	}

	if asset.Description, err = o.optStr("description"); err != nil {
		return Asset{}, err
	}

	if asset.Type, err = o.optStr("type"); err != nil {
		return Asset{}, err
	}

	if asset.Roles, err = o.optStrings("roles"); err != nil {
		return Asset{}, err
	}

	return asset, nil
}

// decodeAssetMap decodes a STAC asset object keyed by asset name.
func decodeAssetMap(o object, key string) (map[string]Asset, error) {
	raw, err := o.optObj(key)
	if err != nil || raw == nil {
		return nil, err
	}

	assets := make(map[string]Asset, len(raw))

	for name, v := range raw {
		asset, err := DecodeAsset(v)
		if err != nil {
			return nil, o.invalid(key+"."+name, err.Error())
		}

		asset.Key = name
		assets[name] = asset
	}

	return assets, nil
}

// decodeAssetList accepts either an array of assets or a STAC asset object.
// Object entries are returned ordered by key.
func decodeAssetList(o object, key string) ([]Asset, error) {
	if !o.has(key) {
		return nil, nil
	}

	if _, ok := o.fields[key].([]any); ok {
		return list(o, key, DecodeAsset)
	}

	assets, err := decodeAssetMap(o, key)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]Asset, 0, len(names))
	for _, name := range names {
		out = append(out, assets[name])
	}

	return out, nil
}

// Provider is an organization that captured or processed collection data.
type Provider struct {
	Name        string   `json:"name"                  yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"       yaml:"roles,omitempty"`
	URL         string   `json:"url,omitempty"         yaml:"url,omitempty"`
}

// DecodeProvider decodes a STAC provider.
func DecodeProvider(raw any) (Provider, error) {
	o, err := asObject("provider", raw)
	if err != nil {
		return Provider{}, err
	}

	var provider Provider

	if provider.Name, err = o.id("name"); err != nil {
		return Provider{}, err
	}

	if provider.Description, err = o.optStr("description"); err != nil {
		return Provider{}, err
	}

	if provider.Roles, err = o.optStrings("roles"); err != nil {
		return Provider{}, err
	}

	if provider.URL, err = o.optStr("url"); err != nil {
		return Provider{}, err
	}

	return provider, nil
}

// TimeInterval is an open or closed temporal interval; nil bounds are open.
type TimeInterval [2]*time.Time

// Extent is the spatial and temporal coverage of a collection.
type Extent struct {
	Spatial  [][]float64    `json:"spatial"  yaml:"spatial"`
	Temporal []TimeInterval `json:"temporal" yaml:"temporal"`
}

// MarshalJSON renders the extent in STAC form.
func (e Extent) MarshalJSON() ([]byte, error) {
	wire := struct {
		Spatial struct {
			BBox [][]float64 `json:"bbox"`
		} `json:"spatial"`
		Temporal struct {
			Interval []TimeInterval `json:"interval"`
		} `json:"temporal"`
	}{}

	wire.Spatial.BBox = e.Spatial
	wire.Temporal.Interval = e.Temporal

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshaling extent: %w", err)
	}

	return data, nil
}

// DecodeExtent decodes a STAC extent.
//
//nolint:cyclop // nested wire shape
func DecodeExtent(raw any) (Extent, error) {
	o, err := asObject("extent", raw)
	if err != nil {
		return Extent{}, err
	}

	spatialRaw, err := o.obj("spatial")
	if err != nil {
		return Extent{}, err
	}

	temporalRaw, err := o.obj("temporal")
	if err != nil {
		return Extent{}, err
	}

	spatial := object{entity: "spatial extent", fields: spatialRaw}
	temporal := object{entity: "temporal extent", fields: temporalRaw}

	boxes, err := spatial.array("bbox")
	if err != nil {
		return Extent{}, err
	}

	var extent Extent

	if extent.Spatial, err = decodeEach(spatial, "bbox", boxes, decodeBBox); err != nil {
		return Extent{}, err
	}

	intervals, err := temporal.array("interval")
	if err != nil {
		return Extent{}, err
	}

	if extent.Temporal, err = decodeEach(temporal, "interval", intervals, decodeInterval); err != nil {
		return Extent{}, err
	}

	return extent, nil
}

func decodeBBox(raw any) ([]float64, error) {
	values, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Entity: "bbox", Reason: "expected an array, got " + typeName(raw)}
	}

	if len(values) != 4 && len(values) != 6 {
		return nil, &DecodeError{Entity: "bbox", Reason: fmt.Sprintf("has %d values, need 4 or 6", len(values))}
	}

	box := make([]float64, 0, len(values))

	for i, v := range values {
		n, ok := v.(float64)
		if !ok {
			return nil, &DecodeError{Entity: "bbox", Field: fmt.Sprintf("[%d]", i), Reason: "must be a number, got " + typeName(v)}
		}

		box = append(box, n)
	}

	return box, nil
}

func decodeInterval(raw any) (TimeInterval, error) {
	bounds, ok := raw.([]any)
	if !ok || len(bounds) != 2 {
		return TimeInterval{}, &DecodeError{Entity: "interval", Reason: "expected a two element array"}
	}

	var interval TimeInterval

	for i, b := range bounds {
		if b == nil {
			continue
		}

		s, ok := b.(string)
		if !ok {
			return TimeInterval{}, &DecodeError{Entity: "interval", Field: fmt.Sprintf("[%d]", i), Reason: "must be a timestamp or null"}
		}

		t, err := parseTime(s)
		if err != nil {
			return TimeInterval{}, &DecodeError{Entity: "interval", Field: fmt.Sprintf("[%d]", i), Reason: err.Error()}
		}

		interval[i] = &t
	}

	return interval, nil
}

// SummaryKind distinguishes the STAC summary variants.
type SummaryKind int

// Summary variants.
const (
	SummaryUnknown SummaryKind = iota
	SummaryEnum
	SummaryRange
	SummarySchema
)

// String implements fmt.Stringer.
func (k SummaryKind) String() string {
	switch k {
	case SummaryEnum:
		return "enum"
	case SummaryRange:
		return "range"
	case SummarySchema:
		return "schema"
	case SummaryUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Summary describes the values a property takes across a collection.
type Summary struct {
	Kind    SummaryKind
	Values  []any
	Minimum any
	Maximum any
	Schema  map[string]any
	Raw     any
}

// MarshalJSON renders the summary in its original wire shape.
func (s Summary) MarshalJSON() ([]byte, error) {
	var v any

	switch s.Kind {
	case SummaryEnum:
		v = s.Values
	case SummaryRange:
		v = map[string]any{"minimum": s.Minimum, "maximum": s.Maximum}
	case SummarySchema:
		v = s.Schema
	case SummaryUnknown:
		v = s.Raw
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return data, nil
}

// DecodeSummary classifies a summary value. It never fails: shapes that are
// not an enumeration, range or schema are kept as SummaryUnknown.
func DecodeSummary(raw any) Summary {
	switch v := raw.(type) {
	case []any:
		return Summary{Kind: SummaryEnum, Values: v}
	case map[string]any:
		minimum, hasMin := v["minimum"]
		maximum, hasMax := v["maximum"]

		if hasMin && hasMax {
			return Summary{Kind: SummaryRange, Minimum: minimum, Maximum: maximum}
		}

		return Summary{Kind: SummarySchema, Schema: v}
	default:
		return Summary{Kind: SummaryUnknown, Raw: raw}
	}
}

// Collection is a STAC collection of items built from ordered datasets.
type Collection struct {
	ID             string             `json:"id"                        yaml:"id"`
	Type           string             `json:"type"                      yaml:"type"`
	STACVersion    string             `json:"stac_version"              yaml:"stac_version"`
	STACExtensions []string           `json:"stac_extensions,omitempty" yaml:"stac_extensions,omitempty"`
	Title          string             `json:"title,omitempty"           yaml:"title,omitempty"`
	Description    string             `json:"description"               yaml:"description"`
	Keywords       []string           `json:"keywords,omitempty"        yaml:"keywords,omitempty"`
	License        string             `json:"license"                   yaml:"license"`
	Providers      []Provider         `json:"providers,omitempty"       yaml:"providers,omitempty"`
	Extent         Extent             `json:"extent"                    yaml:"extent"`
	Summaries      map[string]Summary `json:"summaries,omitempty"       yaml:"-"`
	Links          []Link             `json:"links"                     yaml:"links"`
	Assets         []Asset            `json:"assets,omitempty"          yaml:"assets,omitempty"`
}

// DecodeCollection decodes a STAC collection.
//
//nolint:funlen,cyclop // field-by-field decode
func DecodeCollection(raw any) (*Collection, error) {
	o, err := asObject("collection", raw)
	if err != nil {
		return nil, err
	}

	collection := &Collection{}

	if collection.ID, err = o.id("id"); err != nil {
		return nil, err
	}

	if collection.Type, err = o.id("type"); err != nil {
		return nil, err
	}

	if collection.STACVersion, err = o.id("stac_version"); err != nil {
		return nil, err
	}

	if collection.Description, err = o.str("description"); err != nil {
		return nil, err
	}

	if collection.License, err = o.str("license"); err != nil {
		return nil, err
	}

	extentRaw, err := o.obj("extent")
	if err != nil {
		return nil, err
	}

	if collection.Extent, err = DecodeExtent(extentRaw); err != nil {
		return nil, o.invalid("extent", err.Error())
	}

	if collection.Links, err = list(o, "links", DecodeLink); err != nil {
		return nil, err
	}

	if collection.STACExtensions, err = o.optStrings("stac_extensions"); err != nil {
		return nil, err
	}

	if collection.Title, err = o.optStr("title"); err != nil {
		return nil, err
	}

	if collection.Keywords, err = o.optStrings("keywords"); err != nil {
		return nil, err
	}

	if collection.Providers, err = optList(o, "providers", DecodeProvider); err != nil {
		return nil, err
	}

	summaries, err := o.optObj("summaries")
	if err != nil {
		return nil, err
	}

	if summaries != nil {
		collection.Summaries = make(map[string]Summary, len(summaries))
		for field, v := range summaries {
			collection.Summaries[field] = DecodeSummary(v)
		}
	}

	if collection.Assets, err = decodeAssetList(o, "assets"); err != nil {
		return nil, err
	}

	return collection, nil
}

// CollectionList is the collection listing envelope.
type CollectionList struct {
	Collections []*Collection `json:"collections"     yaml:"collections"`
	Links       []Link        `json:"links,omitempty" yaml:"links,omitempty"`
}

// DecodeCollectionList decodes the collection listing.
func DecodeCollectionList(raw any) (*CollectionList, error) {
	o, err := asObject("collection list", raw)
	if err != nil {
		return nil, err
	}

	resp := &CollectionList{}

	if resp.Collections, err = list(o, "collections", DecodeCollection); err != nil {
		return nil, err
	}

	if resp.Links, err = optList(o, "links", DecodeLink); err != nil {
		return nil, err
	}

	return resp, nil
}
