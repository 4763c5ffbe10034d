package arlula

import (
	"time"

	"github.com/paulmach/orb"
)

// TaskingAreas reports the requested target area and the area of the scene
// that would be captured, in square kilometres.
type TaskingAreas struct {
	Target float64 `json:"target" yaml:"target"`
	Scene  float64 `json:"scene"  yaml:"scene"`
}

// TaskingSearchResult is a capture opportunity within a requested window.
type TaskingSearchResult struct {
	Polygons    orb.MultiPolygon `json:"polygons"              yaml:"polygons"`
	Areas       TaskingAreas     `json:"areas"                 yaml:"areas"`
	StartDate   time.Time        `json:"startDate"             yaml:"startDate"`
	EndDate     time.Time        `json:"endDate"               yaml:"endDate"`
	GSD         float64          `json:"gsd"                   yaml:"gsd"`
	Supplier    string           `json:"supplier"              yaml:"supplier"`
	OrderingID  string           `json:"orderingID"            yaml:"orderingID"`
	OffNadir    float64          `json:"offNadir"              yaml:"offNadir"`
	Bands       []Band           `json:"bands"                 yaml:"bands"`
	Bundles     []BundleOption   `json:"bundles"               yaml:"bundles"`
	Licenses    []License        `json:"licenses"              yaml:"licenses"`
	Platforms   []string         `json:"platforms"             yaml:"platforms"`
	Priorities  []Priority       `json:"priorities,omitempty"  yaml:"priorities,omitempty"`
	CloudLevels []CloudLevel     `json:"cloudLevels,omitempty" yaml:"cloudLevels,omitempty"`
	Annotations []string         `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// LicenseHrefs returns the hrefs of every license offered for the capture.
func (r *TaskingSearchResult) LicenseHrefs() []string {
	return licenseHrefs(r.Licenses)
}

// Bundle returns the bundle with the given key.
func (r *TaskingSearchResult) Bundle(key string) (BundleOption, bool) {
	return findBundle(r.Bundles, key)
}

// DecodeTaskingSearchResult decodes a tasking capture opportunity.
//
//nolint:funlen,cyclop // field-by-field decode
func DecodeTaskingSearchResult(raw any) (*TaskingSearchResult, error) {
	o, err := asObject("tasking search result", raw)
	if err != nil {
		return nil, err
	}

	result := &TaskingSearchResult{}

	if !o.has("polygons") {
		return nil, o.missing("polygons")
	}

	if result.Polygons, err = DecodeMultiPolygon(o.fields["polygons"]); err != nil {
		return nil, o.invalid("polygons", err.Error())
	}

	areasRaw, err := o.obj("areas")
	if err != nil {
		return nil, err
	}

	areas := object{entity: "tasking areas", fields: areasRaw}

	if result.Areas.Target, err = areas.num("target"); err != nil {
		return nil, err
	}

	if result.Areas.Scene, err = areas.num("scene"); err != nil {
		return nil, err
	}

	if result.StartDate, err = o.time("startDate"); err != nil {
		return nil, err
	}

	if result.EndDate, err = o.time("endDate"); err != nil {
		return nil, err
	}

	if result.GSD, err = o.num("gsd"); err != nil {
		return nil, err
	}

	if result.Supplier, err = o.id("supplier"); err != nil {
		return nil, err
	}

	if result.OrderingID, err = o.id("orderingID"); err != nil {
		return nil, err
	}

	if result.OffNadir, err = o.num("offNadir"); err != nil {
		return nil, err
	}

	if result.Bands, err = list(o, "bands", DecodeBand); err != nil {
		return nil, err
	}

	if result.Bundles, err = list(o, "bundles", DecodeBundleOption); err != nil {
		return nil, err
	}

	if result.Licenses, err = list(o, "licenses", DecodeLicense); err != nil {
		return nil, err
	}

	if result.Platforms, err = o.strings("platforms"); err != nil {
		return nil, err
	}

	if result.Priorities, err = optList(o, "priorities", DecodePriority); err != nil {
		return nil, err
	}

	if result.CloudLevels, err = optList(o, "cloudLevels", DecodeCloudLevel); err != nil {
		return nil, err
	}

	if result.Annotations, err = o.optStrings("annotations"); err != nil {
		return nil, err
	}

	return result, nil
}

// TaskingSearchResponse is the tasking search envelope. Errors lists
// suppliers that could not be queried.
type TaskingSearchResponse struct {
	Results []*TaskingSearchResult `json:"results"          yaml:"results"`
	Errors  []SearchError          `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// DecodeTaskingSearchResponse decodes a tasking search response.
func DecodeTaskingSearchResponse(raw any) (*TaskingSearchResponse, error) {
	o, err := asObject("tasking search response", raw)
	if err != nil {
		return nil, err
	}

	resp := &TaskingSearchResponse{}

	if resp.Results, err = list(o, "results", DecodeTaskingSearchResult); err != nil {
		return nil, err
	}

	if resp.Errors, err = optList(o, "errors", DecodeSearchError); err != nil {
		return nil, err
	}

	return resp, nil
}
