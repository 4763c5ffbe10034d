package arlula

import "strconv"

// DefaultBundleKey is the key of the bundle synthesized from legacy flat
// pricing.
const DefaultBundleKey = "default"

// Status is the lifecycle state of an order, campaign or dataset.
type Status string

// Lifecycle states.
const (
	StatusCreated         Status = "created"
	StatusPendingApproval Status = "pending-approval"
	StatusPending         Status = "pending"
	StatusProcessing      Status = "processing"
	StatusPostProcessing  Status = "post-processing"
	StatusComplete        Status = "complete"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
	StatusFailed          Status = "failed"
)

var statuses = map[Status]struct{}{
	StatusCreated:         {},
	StatusPendingApproval: {},
	StatusPending:         {},
	StatusProcessing:      {},
	StatusPostProcessing:  {},
	StatusComplete:        {},
	StatusRejected:        {},
	StatusCancelled:       {},
	StatusFailed:          {},
}

// Terminal reports whether no further transitions are expected.
func (s Status) Terminal() bool {
	switch s {
	case StatusComplete, StatusRejected, StatusCancelled, StatusFailed:
		return true
	case StatusCreated, StatusPendingApproval, StatusPending, StatusProcessing, StatusPostProcessing:
		return false
	default:
		return false
	}
}

func decodeStatus(o object, key string) (Status, error) {
	s, err := o.id(key)
	if err != nil {
		return "", err
	}

	status := Status(s)
	if _, ok := statuses[status]; !ok {
		return "", o.invalid(key, "unknown status "+strconv.Quote(s))
	}

	return status, nil
}

// ResourceType identifies the kind of deliverable a resource holds.
type ResourceType string

// Deliverable kinds.
const (
	ResourceTypeThumbnail            ResourceType = "thumbnail"
	ResourceTypePreview              ResourceType = "preview"
	ResourceTypePreviewMultispectral ResourceType = "preview_multispectral"
	ResourceTypeBasic                ResourceType = "basic"
	ResourceTypeOrthoRGB             ResourceType = "ortho_rgb"
	ResourceTypeOrthoMultispectral   ResourceType = "ortho_multispectral"
	ResourceTypeOrthoPanchromatic    ResourceType = "ortho_panchromatic"
	ResourceTypeOrthoPansharpened    ResourceType = "ortho_pansharpened"
	ResourceTypeMetadata             ResourceType = "metadata"
	ResourceTypeMetadataSupplier     ResourceType = "metadata_supplier"
	ResourceTypeGeometry             ResourceType = "geometry"
	ResourceTypeLicense              ResourceType = "license"
	ResourceTypeReport               ResourceType = "report"
)

var resourceTypes = map[ResourceType]struct{}{
	ResourceTypeThumbnail:            {},
	ResourceTypePreview:              {},
	ResourceTypePreviewMultispectral: {},
	ResourceTypeBasic:                {},
	ResourceTypeOrthoRGB:             {},
	ResourceTypeOrthoMultispectral:   {},
	ResourceTypeOrthoPanchromatic:    {},
	ResourceTypeOrthoPansharpened:    {},
	ResourceTypeMetadata:             {},
	ResourceTypeMetadataSupplier:     {},
	ResourceTypeGeometry:             {},
	ResourceTypeLicense:              {},
	ResourceTypeReport:               {},
}

// DatasetType distinguishes archive deliveries from tasking captures.
type DatasetType string

// Dataset kinds.
const (
	DatasetTypeArchive DatasetType = "archive"
	DatasetTypeTasking DatasetType = "tasking"
)
