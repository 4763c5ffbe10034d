package arlula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	wktNumber  = `[-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`
	wktPoint   = wktNumber + `\s+` + wktNumber
	wktRing    = `\(\s*` + wktPoint + `(?:\s*,\s*` + wktPoint + `)*\s*\)`
	wktPolygon = `(?i)^\s*POLYGON\s*\(\s*` + wktRing + `(?:\s*,\s*` + wktRing + `)*\s*\)\s*$`
)

var wktPolygonPattern = regexp.MustCompile(wktPolygon)

// DecodePolygon decodes a nested coordinate array into a polygon. Any
// structural deviation fails the whole polygon.
//
// A single ring given without the enclosing ring list ([[lon, lat], ...]) is
// accepted for compatibility and returned as a one-ring polygon.
func DecodePolygon(raw any) (orb.Polygon, error) {
	rings, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Entity: "polygon", Reason: "expected an array of rings, got " + typeName(raw)}
	}

	if len(rings) == 0 {
		return nil, &DecodeError{Entity: "polygon", Reason: "has no rings"}
	}

	if isPoint(rings[0]) {
		ring, err := decodeRing(rings)
		if err != nil {
			return nil, &DecodeError{Entity: "polygon", Field: "[0]", Reason: err.Error()}
		}

		return orb.Polygon{ring}, nil
	}

	polygon := make(orb.Polygon, 0, len(rings))

	for i, r := range rings {
		points, ok := r.([]any)
		if !ok {
			return nil, &DecodeError{Entity: "polygon", Field: fmt.Sprintf("[%d]", i), Reason: "ring must be an array, got " + typeName(r)}
		}

		ring, err := decodeRing(points)
		if err != nil {
			return nil, &DecodeError{Entity: "polygon", Field: fmt.Sprintf("[%d]", i), Reason: err.Error()}
		}

		polygon = append(polygon, ring)
	}

	return polygon, nil
}

// DecodeMultiPolygon decodes an array of polygons.
func DecodeMultiPolygon(raw any) (orb.MultiPolygon, error) {
	polygons, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Entity: "multipolygon", Reason: "expected an array of polygons, got " + typeName(raw)}
	}

	if len(polygons) == 0 {
		return nil, &DecodeError{Entity: "multipolygon", Reason: "has no polygons"}
	}

	out := make(orb.MultiPolygon, 0, len(polygons))

	for i, p := range polygons {
		polygon, err := DecodePolygon(p)
		if err != nil {
			return nil, &DecodeError{Entity: "multipolygon", Field: fmt.Sprintf("[%d]", i), Reason: err.Error()}
		}

		out = append(out, polygon)
	}

	return out, nil
}

func isPoint(v any) bool {
	coords, ok := v.([]any)
	if !ok || len(coords) == 0 {
		return false
	}

	_, ok = coords[0].(float64)

	return ok
}

func decodeRing(points []any) (orb.Ring, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: ring has no points", ErrDecode)
	}

	ring := make(orb.Ring, 0, len(points))

	for i, p := range points {
		point, err := decodePoint(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}

		ring = append(ring, point)
	}

	return ring, nil
}

func decodePoint(raw any) (orb.Point, error) {
	coords, ok := raw.([]any)
	if !ok {
		return orb.Point{}, fmt.Errorf("%w: point must be an array, got %s", ErrDecode, typeName(raw))
	}

	if len(coords) < 2 {
		return orb.Point{}, fmt.Errorf("%w: point has %d coordinates, need 2", ErrDecode, len(coords))
	}

	lon, lonOK := coords[0].(float64)
	lat, latOK := coords[1].(float64)

	if !lonOK || !latOK {
		return orb.Point{}, fmt.Errorf("%w: point coordinates must be numbers", ErrDecode)
	}

	return orb.Point{lon, lat}, nil
}

// ValidWKTPolygon reports whether s is WKT polygon text that ParseWKTPolygon
// accepts. Ring closure and winding are not checked.
func ValidWKTPolygon(s string) bool {
	return wktPolygonPattern.MatchString(s)
}

// ParseWKTPolygon parses text of the form POLYGON ((lon lat, ...), (...)).
func ParseWKTPolygon(s string) (orb.Polygon, error) {
	body := strings.TrimSpace(s)

	if len(body) < len("POLYGON") || !strings.EqualFold(body[:len("POLYGON")], "POLYGON") {
		return nil, ErrWKTMissingPrefix
	}

	body = strings.TrimSpace(body[len("POLYGON"):])
	if !strings.HasPrefix(body, "(") {
		return nil, ErrWKTMissingPrefix
	}

	if !wktPolygonPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: want POLYGON ((lon lat, ...)) with two coordinates per point", ErrWKTMalformed)
	}

	body = body[1 : len(body)-1]

	var polygon orb.Polygon

	for _, chunk := range strings.Split(body, ")") {
		chunk = strings.TrimLeft(chunk, " \t\r\n,(")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		ring, err := parseWKTRing(chunk)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", len(polygon), err)
		}

		polygon = append(polygon, ring)
	}

	if len(polygon) == 0 {
		return nil, fmt.Errorf("%w: no rings", ErrWKTMalformed)
	}

	return polygon, nil
}

func parseWKTRing(chunk string) (orb.Ring, error) {
	var ring orb.Ring

	for _, pair := range strings.Split(chunk, ",") {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: point %q must have two coordinates", ErrWKTMalformed, strings.TrimSpace(pair))
		}

		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: longitude %q", ErrWKTMalformed, fields[0])
		}

		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: latitude %q", ErrWKTMalformed, fields[1])
		}

		ring = append(ring, orb.Point{lon, lat})
	}

	return ring, nil
}

// FormatWKTPolygon renders a polygon as WKT text.
func FormatWKTPolygon(polygon orb.Polygon) string {
	var sb strings.Builder

	sb.WriteString("POLYGON (")

	for i, ring := range polygon {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString("(")

		for j, p := range ring {
			if j > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.FormatFloat(p.Lon(), 'f', -1, 64))
			sb.WriteString(" ")
			sb.WriteString(strconv.FormatFloat(p.Lat(), 'f', -1, 64))
		}

		sb.WriteString(")")
	}

	sb.WriteString(")")

	return sb.String()
}

// polygonCoordinates converts a polygon to plain nested slices for JSON bodies.
func polygonCoordinates(polygon orb.Polygon) [][][]float64 {
	out := make([][][]float64, 0, len(polygon))

	for _, ring := range polygon {
		r := make([][]float64, 0, len(ring))
		for _, p := range ring {
			r = append(r, []float64{p.Lon(), p.Lat()})
		}

		out = append(out, r)
	}

	return out
}

// Geometry is a GeoJSON geometry attached to a STAC item.
type Geometry struct {
	Type  string
	Shape orb.Geometry
}

// DecodeGeometry decodes a GeoJSON Point, Polygon or MultiPolygon.
func DecodeGeometry(raw any) (Geometry, error) {
	o, err := asObject("geometry", raw)
	if err != nil {
		return Geometry{}, err
	}

	kind, err := o.id("type")
	if err != nil {
		return Geometry{}, err
	}

	if !o.has("coordinates") {
		return Geometry{}, o.missing("coordinates")
	}

	coords := o.fields["coordinates"]

	switch kind {
	case "Point":
		point, err := decodePoint(coords)
		if err != nil {
			return Geometry{}, o.invalid("coordinates", err.Error())
		}

		return Geometry{Type: kind, Shape: point}, nil
	case "Polygon":
		polygon, err := DecodePolygon(coords)
		if err != nil {
			return Geometry{}, o.invalid("coordinates", err.Error())
		}

		return Geometry{Type: kind, Shape: polygon}, nil
	case "MultiPolygon":
		multi, err := DecodeMultiPolygon(coords)
		if err != nil {
			return Geometry{}, o.invalid("coordinates", err.Error())
		}

		return Geometry{Type: kind, Shape: multi}, nil
	default:
		return Geometry{}, o.invalid("type", "unsupported geometry type "+strconv.Quote(kind))
	}
}

// MarshalJSON renders the geometry as GeoJSON.
func (g Geometry) MarshalJSON() ([]byte, error) {
	if g.Shape == nil {
		return []byte("null"), nil
	}

	data, err := json.Marshal(geojson.NewGeometry(g.Shape))
	if err != nil {
		return nil, fmt.Errorf("marshaling geometry: %w", err)
	}

	return data, nil
}
