package arlula

// Item is a STAC feature, one dataset placed in a collection.
type Item struct {
	ID             string           `json:"id"                        yaml:"id"`
	Type           string           `json:"type"                      yaml:"type"`
	STACVersion    string           `json:"stac_version"              yaml:"stac_version"`
	STACExtensions []string         `json:"stac_extensions,omitempty" yaml:"stac_extensions,omitempty"`
	CRS            string           `json:"crs,omitempty"             yaml:"crs,omitempty"`
	Geometry       *Geometry        `json:"geometry"                  yaml:"-"`
	BBox           []float64        `json:"bbox,omitempty"            yaml:"bbox,omitempty"`
	Properties     map[string]any   `json:"properties"                yaml:"properties"`
	Links          []Link           `json:"links"                     yaml:"links"`
	Assets         map[string]Asset `json:"assets"                    yaml:"assets"`
	Collection     string           `json:"collection,omitempty"      yaml:"collection,omitempty"`
}

// Datetime returns the item's acquisition timestamp property, if present and well formed.
func (i *Item) Datetime() (string, bool) {
	s, ok := i.Properties["datetime"].(string)

	return s, ok && s != ""
}

// DecodeItem decodes a STAC item.
//
//nolint:funlen,cyclop // field-by-field decode
func DecodeItem(raw any) (*Item, error) {
	o, err := asObject("item", raw)
	if err != nil {
		return nil, err
	}

	item := &Item{}

	if item.ID, err = o.id("id"); err != nil {
		return nil, err
	}

	if item.Type, err = o.id("type"); err != nil {
		return nil, err
	}

	if item.STACVersion, err = o.id("stac_version"); err != nil {
		return nil, err
	}

	if !o.has("geometry") {
		return nil, o.missing("geometry")
	}

	geometry, err := DecodeGeometry(o.fields["geometry"])
	if err != nil {
		return nil, o.invalid("geometry", err.Error())
	}

	item.Geometry = &geometry

	if item.Properties, err = o.obj("properties"); err != nil {
		return nil, err
	}

	if item.Links, err = list(o, "links", DecodeLink); err != nil {
		return nil, err
	}

	if !o.has("assets") {
		return nil, o.missing("assets")
	}

	if item.Assets, err = decodeAssetMap(o, "assets"); err != nil {
		return nil, err
	}

	if item.STACExtensions, err = o.optStrings("stac_extensions"); err != nil {
		return nil, err
	}

	if item.CRS, err = decodeCRS(o); err != nil {
		return nil, err
	}

	if o.has("bbox") {
		if item.BBox, err = decodeBBox(o.fields["bbox"]); err != nil {
			return nil, o.invalid("bbox", err.Error())
		}
	}

	if item.Collection, err = o.optStr("collection"); err != nil {
		return nil, err
	}

	return item, nil
}

// decodeCRS accepts either a plain CRS string or a GeoJSON named CRS object.
func decodeCRS(o object) (string, error) {
	if !o.has("crs") {
		return "", nil
	}

	if s, ok := o.fields["crs"].(string); ok {
		return s, nil
	}

	crs, err := o.obj("crs")
	if err != nil {
		return "", err
	}

	props, ok := crs["properties"].(map[string]any)
	if !ok {
		return "", o.invalid("crs", "named CRS object has no properties")
	}

	name, ok := props["name"].(string)
	if !ok || name == "" {
		return "", o.invalid("crs", "named CRS object has no name")
	}

	return name, nil
}

// ItemCollection is the item listing envelope for a collection.
type ItemCollection struct {
	Type           string  `json:"type"                     yaml:"type"`
	Features       []*Item `json:"features"                 yaml:"features"`
	Links          []Link  `json:"links,omitempty"          yaml:"links,omitempty"`
	NumberMatched  int64   `json:"numberMatched,omitempty"  yaml:"numberMatched,omitempty"`
	NumberReturned int64   `json:"numberReturned,omitempty" yaml:"numberReturned,omitempty"`
}

// DecodeItemCollection decodes a STAC feature collection.
func DecodeItemCollection(raw any) (*ItemCollection, error) {
	o, err := asObject("item collection", raw)
	if err != nil {
		return nil, err
	}

	resp := &ItemCollection{}

	if resp.Type, err = o.optStr("type"); err != nil {
		return nil, err
	}

	if resp.Features, err = list(o, "features", DecodeItem); err != nil {
		return nil, err
	}

	if resp.Links, err = optList(o, "links", DecodeLink); err != nil {
		return nil, err
	}

	if resp.NumberMatched, err = o.optInteger("numberMatched"); err != nil {
		return nil, err
	}

	if resp.NumberReturned, err = o.optInteger("numberReturned"); err != nil {
		return nil, err
	}

	return resp, nil
}
