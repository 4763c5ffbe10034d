package arlula

import (
	"strconv"
	"time"
)

// Resource is one downloadable file belonging to a dataset.
type Resource struct {
	ID        string       `json:"id"        yaml:"id"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" yaml:"updatedAt"`
	Order     string       `json:"order"     yaml:"order"`
	Name      string       `json:"name"      yaml:"name"`
	Type      ResourceType `json:"type"      yaml:"type"`
	Size      int64        `json:"size"      yaml:"size"`
	Format    string       `json:"format"    yaml:"format"`
	Roles     []string     `json:"roles"     yaml:"roles"`
	Checksum  string       `json:"checksum"  yaml:"checksum"`
}

// DecodeResource decodes a dataset resource.
//
//nolint:cyclop // field-by-field decode
func DecodeResource(raw any) (*Resource, error) {
	o, err := asObject("resource", raw)
	if err != nil {
		return nil, err
	}

	resource := &Resource{}

	if resource.ID, err = o.id("id"); err != nil {
		return nil, err
	}

	if resource.CreatedAt, err = o.time("createdAt"); err != nil {
		return nil, err
	}

	if resource.UpdatedAt, err = o.time("updatedAt"); err != nil {
		return nil, err
	}

	if resource.Order, err = o.id("order"); err != nil {
		return nil, err
	}

	if resource.Name, err = o.str("name"); err != nil {
		return nil, err
	}

	kind, err := o.id("type")
	if err != nil {
		return nil, err
	}

	resource.Type = ResourceType(kind)
	if _, ok := resourceTypes[resource.Type]; !ok {
		return nil, o.invalid("type", "unknown resource type "+strconv.Quote(kind))
	}

	if resource.Size, err = o.integer("size"); err != nil {
		return nil, err
	}

	if resource.Format, err = o.str("format"); err != nil {
		return nil, err
	}

	if resource.Checksum, err = o.str("checksum"); err != nil {
		return nil, err
	}

	if resource.Roles, err = o.optStrings("roles"); err != nil {
		return nil, err
	}

	return resource, nil
}
