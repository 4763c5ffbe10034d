package arlula

import (
	"time"

	"github.com/paulmach/orb"
)

// Center is the geographic center of a scene.
type Center struct {
	Lat  float64 `json:"lat"  yaml:"lat"`
	Long float64 `json:"long" yaml:"long"`
}

// DecodeCenter decodes a scene center.
func DecodeCenter(raw any) (Center, error) {
	o, err := asObject("center", raw)
	if err != nil {
		return Center{}, err
	}

	var center Center

	if center.Lat, err = o.num("lat"); err != nil {
		return Center{}, err
	}

	if center.Long, err = o.num("long"); err != nil {
		return Center{}, err
	}

	return center, nil
}

// OverlapPercent is the overlap expressed against each of the two shapes.
type OverlapPercent struct {
	Scene  float64 `json:"scene"  yaml:"scene"`
	Search float64 `json:"search" yaml:"search"`
}

// Overlap describes the intersection of a scene with the search area.
type Overlap struct {
	Area    float64        `json:"area"    yaml:"area"`
	Percent OverlapPercent `json:"percent" yaml:"percent"`
	Polygon orb.Polygon    `json:"polygon" yaml:"polygon"`
}

// DecodeOverlap decodes a scene/search overlap.
func DecodeOverlap(raw any) (Overlap, error) {
	o, err := asObject("overlap", raw)
	if err != nil {
		return Overlap{}, err
	}

	var overlap Overlap

	if overlap.Area, err = o.num("area"); err != nil {
		return Overlap{}, err
	}

	percent, err := o.obj("percent")
	if err != nil {
		return Overlap{}, err
	}

	p := object{entity: "overlap percent", fields: percent}

	if overlap.Percent.Scene, err = p.num("scene"); err != nil {
		return Overlap{}, err
	}

	if overlap.Percent.Search, err = p.num("search"); err != nil {
		return Overlap{}, err
	}

	if !o.has("polygon") {
		return Overlap{}, o.missing("polygon")
	}

	if overlap.Polygon, err = DecodePolygon(o.fields["polygon"]); err != nil {
		return Overlap{}, o.invalid("polygon", err.Error())
	}

	return overlap, nil
}

// SearchResult is an archive scene that can be ordered. Orders reference
// OrderingID, which may differ from SceneID.
type SearchResult struct {
	SceneID         string         `json:"sceneID"         yaml:"sceneID"`
	Supplier        string         `json:"supplier"        yaml:"supplier"`
	Platform        string         `json:"platform"        yaml:"platform"`
	Date            time.Time      `json:"date"            yaml:"date"`
	Thumbnail       string         `json:"thumbnail"       yaml:"thumbnail"`
	Cloud           float64        `json:"cloud"           yaml:"cloud"`
	OffNadir        float64        `json:"offNadir"        yaml:"offNadir"`
	GSD             float64        `json:"gsd"             yaml:"gsd"`
	Bands           []Band         `json:"bands"           yaml:"bands"`
	Area            float64        `json:"area"            yaml:"area"`
	Center          Center         `json:"center"          yaml:"center"`
	Bounding        orb.Polygon    `json:"bounding"        yaml:"bounding"`
	Overlap         Overlap        `json:"overlap"         yaml:"overlap"`
	FulfillmentTime float64        `json:"fulfillmentTime" yaml:"fulfillmentTime"`
	OrderingID      string         `json:"orderingID"      yaml:"orderingID"`
	Bundles         []BundleOption `json:"bundles"         yaml:"bundles"`
	Licenses        []License      `json:"licenses"        yaml:"licenses"`
	Annotations     []string       `json:"annotations"     yaml:"annotations"`
}

// LicenseHrefs returns the hrefs of every license offered for the scene.
func (r *SearchResult) LicenseHrefs() []string {
	return licenseHrefs(r.Licenses)
}

// Bundle returns the bundle with the given key.
func (r *SearchResult) Bundle(key string) (BundleOption, bool) {
	return findBundle(r.Bundles, key)
}

// DecodeSearchResult decodes an archive search result.
//
//nolint:funlen,cyclop // field-by-field decode
func DecodeSearchResult(raw any) (*SearchResult, error) {
	o, err := asObject("search result", raw)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}

	if result.SceneID, err = o.id("sceneID"); err != nil {
		return nil, err
	}

	if result.Supplier, err = o.id("supplier"); err != nil {
		return nil, err
	}

	if result.Platform, err = o.id("platform"); err != nil {
		return nil, err
	}

	if result.Date, err = o.time("date"); err != nil {
		return nil, err
	}

	if result.Thumbnail, err = o.str("thumbnail"); err != nil {
		return nil, err
	}

	if result.Cloud, err = o.num("cloud"); err != nil {
		return nil, err
	}

	if result.OffNadir, err = o.num("offNadir"); err != nil {
		return nil, err
	}

	if result.Annotations, err = o.strings("annotations"); err != nil {
		return nil, err
	}

	if result.Area, err = o.num("area"); err != nil {
		return nil, err
	}

	centerRaw, err := o.obj("center")
	if err != nil {
		return nil, err
	}

	if result.Center, err = DecodeCenter(centerRaw); err != nil {
		return nil, o.invalid("center", err.Error())
	}

	if !o.has("bounding") {
		return nil, o.missing("bounding")
	}

	if result.Bounding, err = DecodePolygon(o.fields["bounding"]); err != nil {
		return nil, o.invalid("bounding", err.Error())
	}

	overlapRaw, err := o.obj("overlap")
	if err != nil {
		return nil, err
	}

	if result.Overlap, err = DecodeOverlap(overlapRaw); err != nil {
		return nil, o.invalid("overlap", err.Error())
	}

	// Optional fields.
	if result.Bands, err = optList(o, "bands", DecodeBand); err != nil {
		return nil, err
	}

	if n, ok, err := o.optNum("fulfillmentTime"); err != nil {
		return nil, err
	} else if ok {
		result.FulfillmentTime = n
	}

	// Modern fields with legacy fallbacks.
	if result.GSD, err = numWithFallback(o, "gsd", "resolution"); err != nil {
		return nil, err
	}

	if result.OrderingID, err = idWithFallback(o, "orderingID", "id"); err != nil {
		return nil, err
	}

	if result.Bundles, err = decodeBundlesWithFallback(o, result.Bands); err != nil {
		return nil, err
	}

	if result.Licenses, err = decodeLicensesWithFallback(o); err != nil {
		return nil, err
	}

	return result, nil
}

// SearchError is a per-supplier failure reported alongside search results.
type SearchError struct {
	Supplier string `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Message  string `json:"message"            yaml:"message"`
}

// DecodeSearchError accepts either a bare message string or an object with
// supplier and message (or error) fields.
func DecodeSearchError(raw any) (SearchError, error) {
	if msg, ok := raw.(string); ok {
		return SearchError{Message: msg}, nil
	}

	o, err := asObject("search error", raw)
	if err != nil {
		return SearchError{}, err
	}

	var searchErr SearchError

	if searchErr.Supplier, err = o.optStr("supplier"); err != nil {
		return SearchError{}, err
	}

	if searchErr.Message, err = strWithFallback(o, "message", "error"); err != nil {
		return SearchError{}, err
	}

	return searchErr, nil
}

// SearchResponse is the archive search envelope.
type SearchResponse struct {
	State   string          `json:"state,omitempty"  yaml:"state,omitempty"`
	Errors  []SearchError   `json:"errors,omitempty" yaml:"errors,omitempty"`
	Results []*SearchResult `json:"results"          yaml:"results"`
}

// DecodeSearchResponse decodes an archive search response. A bare array of
// results is accepted as the legacy envelope.
func DecodeSearchResponse(raw any) (*SearchResponse, error) {
	if items, ok := raw.([]any); ok {
		o := object{entity: "search response", fields: map[string]any{"results": items}}

		results, err := decodeEach(o, "results", items, DecodeSearchResult)
		if err != nil {
			return nil, err
		}

		return &SearchResponse{Results: results}, nil
	}

	o, err := asObject("search response", raw)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{}

	if resp.Results, err = list(o, "results", DecodeSearchResult); err != nil {
		return nil, err
	}

	if resp.State, err = o.optStr("state"); err != nil {
		return nil, err
	}

	if resp.Errors, err = optList(o, "errors", DecodeSearchError); err != nil {
		return nil, err
	}

	return resp, nil
}

func numWithFallback(o object, key, legacy string) (float64, error) {
	if o.has(key) {
		return o.num(key)
	}

	if o.has(legacy) {
		return o.num(legacy)
	}

	return 0, o.missing(key)
}

func idWithFallback(o object, key, legacy string) (string, error) {
	if o.has(key) {
		return o.id(key)
	}

	if o.has(legacy) {
		return o.id(legacy)
	}

	return "", o.missing(key)
}

func strWithFallback(o object, key, legacy string) (string, error) {
	if o.has(key) {
		return o.str(key)
	}

	if o.has(legacy) {
		return o.str(legacy)
	}

	return "", o.missing(key)
}

// decodeBundlesWithFallback reads "bundles", or synthesizes a default bundle
// covering every band from the legacy flat "price.base".
func decodeBundlesWithFallback(o object, bands []Band) ([]BundleOption, error) {
	if o.has("bundles") {
		return list(o, "bundles", DecodeBundleOption)
	}

	if !o.has("price") {
		return nil, o.missing("bundles")
	}

	priceRaw, err := o.obj("price")
	if err != nil {
		return nil, err
	}

	price := object{entity: "search result price", fields: priceRaw}

	base, err := price.integer("base")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bands))
	for _, band := range bands {
		ids = append(ids, band.ID)
	}

	return []BundleOption{{Key: DefaultBundleKey, Name: "Default", Bands: ids, Price: base}}, nil
}

// decodeLicensesWithFallback reads "licenses", or synthesizes a single
// license from the legacy flat "eula" string.
func decodeLicensesWithFallback(o object) ([]License, error) {
	if o.has("licenses") {
		return list(o, "licenses", DecodeLicense)
	}

	if !o.has("eula") {
		return nil, o.missing("licenses")
	}

	eula, err := o.id("eula")
	if err != nil {
		return nil, err
	}

	return []License{{Href: eula}}, nil
}

func licenseHrefs(licenses []License) []string {
	hrefs := make([]string, 0, len(licenses))
	for _, license := range licenses {
		hrefs = append(hrefs, license.Href)
	}

	return hrefs
}

func findBundle(bundles []BundleOption, key string) (BundleOption, bool) {
	for _, bundle := range bundles {
		if bundle.Key == key {
			return bundle, true
		}
	}

	return BundleOption{}, false
}
