package arlula

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
)

// Validation limits shared by archive and tasking searches.
const (
	MinimumGSD            = 0.1
	MaxCloudCover         = 100
	MaxArchiveOffNadir    = 45
	MaxTaskingOffNadir    = 60
	searchDateFormat      = time.DateOnly
	taskingDateTimeFormat = time.RFC3339
)

type geometryKind int

const (
	geometryNone geometryKind = iota
	geometryPoint
	geometryBox
	geometryPolygon
	geometryWKT
)

// searchArea is the mutually exclusive spatial criterion of a search.
type searchArea struct {
	kind    geometryKind
	point   orb.Point
	box     orb.Bound
	polygon orb.Polygon
	wkt     string
}

func (a searchArea) valid() bool {
	switch a.kind {
	case geometryPoint:
		return finitePoint(a.point)
	case geometryBox:
		return finitePoint(a.box.Min) && finitePoint(a.box.Max)
	case geometryPolygon:
		if len(a.polygon) == 0 || len(a.polygon[0]) == 0 {
			return false
		}

		for _, ring := range a.polygon {
			for _, p := range ring {
				if !finitePoint(p) {
					return false
				}
			}
		}

		return true
	case geometryWKT:
		return ValidWKTPolygon(a.wkt)
	case geometryNone:
		return false
	default:
		return false
	}
}

// fields returns the wire key/value pairs of the area, with polygons as a JSON ring list.
func (a searchArea) fields() map[string]any {
	out := map[string]any{}

	switch a.kind {
	case geometryPoint:
		out["lat"] = a.point.Lat()
		out["long"] = a.point.Lon()
	case geometryBox:
		out["west"] = a.box.Min.Lon()
		out["south"] = a.box.Min.Lat()
		out["east"] = a.box.Max.Lon()
		out["north"] = a.box.Max.Lat()
	case geometryPolygon:
		out["polygon"] = polygonCoordinates(a.polygon)
	case geometryWKT:
		out["polygon"] = a.wkt
	case geometryNone:
	}

	return out
}

// searchFilters are the numeric and supplier filters shared by both searches.
type searchFilters struct {
	gsd      float64
	supplier string
	cloud    *float64
	offNadir *float64
}

func (f searchFilters) valid(maxOffNadir float64) bool {
	if !finite(f.gsd) || f.gsd <= MinimumGSD {
		return false
	}

	if f.cloud != nil && (!finite(*f.cloud) || *f.cloud < 0 || *f.cloud > MaxCloudCover) {
		return false
	}

	if f.offNadir != nil && (!finite(*f.offNadir) || *f.offNadir < 0 || *f.offNadir > maxOffNadir) {
		return false
	}

	return true
}

// SearchRequest is an archive imagery search. The zero value is invalid;
// start from NewSearchRequest.
type SearchRequest struct {
	start time.Time
	end   time.Time
	area  searchArea
	searchFilters
}

// NewSearchRequest starts a single-date archive search with a maximum ground sample distance.
func NewSearchRequest(date time.Time, gsd float64) SearchRequest {
	return SearchRequest{start: date, searchFilters: searchFilters{gsd: gsd}}
}

// AtDate searches a single capture date, clearing any range end.
func (r SearchRequest) AtDate(date time.Time) SearchRequest {
	r.start = date
	r.end = time.Time{}

	return r
}

// Between searches captures from start to end inclusive.
func (r SearchRequest) Between(start, end time.Time) SearchRequest {
	r.start = start
	r.end = end

	return r
}

// WithPoint searches imagery covering a point, replacing any other area.
func (r SearchRequest) WithPoint(long, lat float64) SearchRequest {
	r.area = searchArea{kind: geometryPoint, point: orb.Point{long, lat}}

	return r
}

// WithBoundingBox searches imagery intersecting a box, replacing any other area.
func (r SearchRequest) WithBoundingBox(west, north, east, south float64) SearchRequest {
	r.area = searchArea{kind: geometryBox, box: orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}}}

	return r
}

// WithPolygon searches imagery intersecting a polygon, replacing any other area.
func (r SearchRequest) WithPolygon(polygon orb.Polygon) SearchRequest {
	r.area = searchArea{kind: geometryPolygon, polygon: polygon}

	return r
}

// WithWKTPolygon searches imagery intersecting a WKT polygon, replacing any other area.
func (r SearchRequest) WithWKTPolygon(wkt string) SearchRequest {
	r.area = searchArea{kind: geometryWKT, wkt: wkt}

	return r
}

// WithMaximumGSD sets the coarsest acceptable ground sample distance.
func (r SearchRequest) WithMaximumGSD(gsd float64) SearchRequest {
	r.gsd = gsd

	return r
}

// WithSupplier restricts results to one supplier.
func (r SearchRequest) WithSupplier(supplier string) SearchRequest {
	r.supplier = supplier

	return r
}

// WithMaximumCloudCover sets the cloud cover ceiling, in percent.
func (r SearchRequest) WithMaximumCloudCover(cloud float64) SearchRequest {
	r.cloud = &cloud

	return r
}

// WithMaximumOffNadir sets the off-nadir ceiling, in degrees.
func (r SearchRequest) WithMaximumOffNadir(offNadir float64) SearchRequest {
	r.offNadir = &offNadir

	return r
}

// Valid reports whether the request would be accepted by the server.
func (r SearchRequest) Valid() bool {
	if r.start.IsZero() {
		return false
	}

	if !r.end.IsZero() && r.end.Before(r.start) {
		return false
	}

	return r.area.valid() && r.searchFilters.valid(MaxArchiveOffNadir)
}

// Query renders the request as URL query parameters. Invalid requests
// render as empty values; an area that cannot be encoded empties the whole query.
func (r SearchRequest) Query() url.Values {
	q := url.Values{}
	if !r.Valid() {
		return q
	}

	q.Set("start", r.start.Format(searchDateFormat))

	if !r.end.IsZero() {
		q.Set("end", r.end.Format(searchDateFormat))
	}

	q.Set("gsd", formatFloat(r.gsd))

	for key, v := range r.area.fields() {
		switch v := v.(type) {
		case float64:
			q.Set(key, formatFloat(v))
		case string:
			q.Set(key, v)
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return url.Values{}
			}

			q.Set(key, string(data))
		}
	}

	if r.supplier != "" {
		q.Set("supplier", r.supplier)
	}

	if r.cloud != nil {
		q.Set("cloud", formatFloat(*r.cloud))
	}

	if r.offNadir != nil {
		q.Set("off-nadir", formatFloat(*r.offNadir))
	}

	return q
}

// TaskingSearchRequest searches future capture opportunities over a window.
type TaskingSearchRequest struct {
	start time.Time
	end   time.Time
	area  searchArea
	searchFilters
}

// NewTaskingSearchRequest starts a tasking search over the capture window.
func NewTaskingSearchRequest(start, end time.Time, gsd float64) TaskingSearchRequest {
	return TaskingSearchRequest{start: start, end: end, searchFilters: searchFilters{gsd: gsd}}
}

// Between replaces the capture window.
func (r TaskingSearchRequest) Between(start, end time.Time) TaskingSearchRequest {
	r.start = start
	r.end = end

	return r
}

// WithPoint targets a point, replacing any other area.
func (r TaskingSearchRequest) WithPoint(long, lat float64) TaskingSearchRequest {
	r.area = searchArea{kind: geometryPoint, point: orb.Point{long, lat}}

	return r
}

// WithBoundingBox targets a box, replacing any other area.
func (r TaskingSearchRequest) WithBoundingBox(west, north, east, south float64) TaskingSearchRequest {
	r.area = searchArea{kind: geometryBox, box: orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}}}

	return r
}

// WithPolygon targets a polygon, replacing any other area.
func (r TaskingSearchRequest) WithPolygon(polygon orb.Polygon) TaskingSearchRequest {
	r.area = searchArea{kind: geometryPolygon, polygon: polygon}

	return r
}

// WithWKTPolygon targets a WKT polygon, replacing any other area.
func (r TaskingSearchRequest) WithWKTPolygon(wkt string) TaskingSearchRequest {
	r.area = searchArea{kind: geometryWKT, wkt: wkt}

	return r
}

// WithMaximumGSD sets the coarsest acceptable ground sample distance.
func (r TaskingSearchRequest) WithMaximumGSD(gsd float64) TaskingSearchRequest {
	r.gsd = gsd

	return r
}

// WithSupplier restricts results to one supplier.
func (r TaskingSearchRequest) WithSupplier(supplier string) TaskingSearchRequest {
	r.supplier = supplier

	return r
}

// WithMaximumCloudCover sets the cloud cover ceiling, in percent.
func (r TaskingSearchRequest) WithMaximumCloudCover(cloud float64) TaskingSearchRequest {
	r.cloud = &cloud

	return r
}

// WithMaximumOffNadir sets the off-nadir ceiling. The angle is stored as its magnitude.
func (r TaskingSearchRequest) WithMaximumOffNadir(offNadir float64) TaskingSearchRequest {
	offNadir = math.Abs(offNadir)
	r.offNadir = &offNadir

	return r
}

// Valid reports whether the request would be accepted by the server.
func (r TaskingSearchRequest) Valid() bool {
	if r.start.IsZero() || r.end.IsZero() || r.end.Before(r.start) {
		return false
	}

	return r.area.valid() && r.searchFilters.valid(MaxTaskingOffNadir)
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r TaskingSearchRequest) Payload() map[string]any {
	if !r.Valid() {
		return nil
	}

	body := r.area.fields()
	body["start"] = r.start.UTC().Format(taskingDateTimeFormat)
	body["end"] = r.end.UTC().Format(taskingDateTimeFormat)
	body["gsd"] = r.gsd

	if r.supplier != "" {
		body["supplier"] = r.supplier
	}

	if r.cloud != nil {
		body["cloud"] = *r.cloud
	}

	if r.offNadir != nil {
		body["offNadir"] = *r.offNadir
	}

	return body
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r TaskingSearchRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finitePoint(p orb.Point) bool {
	return finite(p.Lon()) && finite(p.Lat())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// marshalPayload encodes a request body. Nil payloads encode as null.
func marshalPayload(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return data, nil
}
