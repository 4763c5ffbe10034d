package arlula

// Band describes a spectral channel by its wavelength bounds.
type Band struct {
	Name string  `json:"name" yaml:"name"`
	ID   string  `json:"id"   yaml:"id"`
	Min  float64 `json:"min"  yaml:"min"`
	Max  float64 `json:"max"  yaml:"max"`
}

// Center returns the band's center wavelength.
func (b Band) Center() float64 {
	return (b.Min + b.Max) / 2
}

// Width returns the band's wavelength span.
func (b Band) Width() float64 {
	return b.Max - b.Min
}

// DecodeBand decodes a band descriptor.
func DecodeBand(raw any) (Band, error) {
	o, err := asObject("band", raw)
	if err != nil {
		return Band{}, err
	}

	var band Band

	if band.Name, err = o.str("name"); err != nil {
		return Band{}, err
	}

	if band.ID, err = o.id("id"); err != nil {
		return Band{}, err
	}

	if band.Min, err = o.num("min"); err != nil {
		return Band{}, err
	}

	if band.Max, err = o.num("max"); err != nil {
		return Band{}, err
	}

	return band, nil
}

// BundleOption is an orderable band/processing bundle. Price is in minor
// currency units.
type BundleOption struct {
	Key   string   `json:"key"            yaml:"key"`
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Bands []string `json:"bands"          yaml:"bands"`
	Price int64    `json:"price"          yaml:"price"`
}

// DecodeBundleOption decodes an orderable bundle.
func DecodeBundleOption(raw any) (BundleOption, error) {
	o, err := asObject("bundle", raw)
	if err != nil {
		return BundleOption{}, err
	}

	var bundle BundleOption

	if bundle.Key, err = o.id("key"); err != nil {
		return BundleOption{}, err
	}

	if bundle.Bands, err = o.strings("bands"); err != nil {
		return BundleOption{}, err
	}

	if bundle.Price, err = o.integer("price"); err != nil {
		return BundleOption{}, err
	}

	if bundle.Name, err = o.optStr("name"); err != nil {
		return BundleOption{}, err
	}

	return bundle, nil
}

// License is a usage license offered for a scene or capture. Href
// identifies the EULA an order must reference.
type License struct {
	Name           string  `json:"name"           yaml:"name"`
	Href           string  `json:"href"           yaml:"href"`
	LoadingPercent float64 `json:"loadingPercent" yaml:"loadingPercent"`
	LoadingAmount  int64   `json:"loadingAmount"  yaml:"loadingAmount"`
}

// DecodeLicense decodes a license option.
func DecodeLicense(raw any) (License, error) {
	o, err := asObject("license", raw)
	if err != nil {
		return License{}, err
	}

	var license License

	if license.Name, err = o.str("name"); err != nil {
		return License{}, err
	}

	if license.Href, err = o.id("href"); err != nil {
		return License{}, err
	}

	if license.LoadingPercent, err = o.num("loadingPercent"); err != nil {
		return License{}, err
	}

	if license.LoadingAmount, err = o.integer("loadingAmount"); err != nil {
		return License{}, err
	}

	return license, nil
}

// CloudLevel is a selectable cloud ceiling for a tasking order.
type CloudLevel struct {
	Max            int64   `json:"max"            yaml:"max"`
	Name           string  `json:"name"           yaml:"name"`
	LoadingPercent float64 `json:"loadingPercent" yaml:"loadingPercent"`
	LoadingAmount  int64   `json:"loadingAmount"  yaml:"loadingAmount"`
}

// DecodeCloudLevel decodes a tasking cloud ceiling option.
func DecodeCloudLevel(raw any) (CloudLevel, error) {
	o, err := asObject("cloud level", raw)
	if err != nil {
		return CloudLevel{}, err
	}

	var level CloudLevel

	if level.Max, err = o.integer("max"); err != nil {
		return CloudLevel{}, err
	}

	if level.Name, err = o.str("name"); err != nil {
		return CloudLevel{}, err
	}

	if level.LoadingPercent, err = o.num("loadingPercent"); err != nil {
		return CloudLevel{}, err
	}

	if level.LoadingAmount, err = o.integer("loadingAmount"); err != nil {
		return CloudLevel{}, err
	}

	return level, nil
}

// Priority is a selectable tasking priority.
type Priority struct {
	Key            string  `json:"key"            yaml:"key"`
	Name           string  `json:"name"           yaml:"name"`
	LoadingPercent float64 `json:"loadingPercent" yaml:"loadingPercent"`
	LoadingAmount  int64   `json:"loadingAmount"  yaml:"loadingAmount"`
}

// DecodePriority decodes a tasking priority option.
func DecodePriority(raw any) (Priority, error) {
	o, err := asObject("priority", raw)
	if err != nil {
		return Priority{}, err
	}

	var priority Priority

	if priority.Key, err = o.id("key"); err != nil {
		return Priority{}, err
	}

	if priority.Name, err = o.str("name"); err != nil {
		return Priority{}, err
	}

	if priority.LoadingPercent, err = o.num("loadingPercent"); err != nil {
		return Priority{}, err
	}

	if priority.LoadingAmount, err = o.integer("loadingAmount"); err != nil {
		return Priority{}, err
	}

	return priority, nil
}
