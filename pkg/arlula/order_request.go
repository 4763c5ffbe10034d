package arlula

import (
	"slices"
)

// orderFields are the selections and notification settings common to archive
// and tasking orders.
type orderFields struct {
	id        string
	eula      string
	bundleKey string
	offered   []string
	webhooks  []string
	emails    []string
	team      string
	coupon    string
	payment   string
}

// valid checks the shared rules. When the order was built from a search
// result, the EULA must be one the result offers.
func (f orderFields) valid() bool {
	if f.id == "" || f.eula == "" || f.bundleKey == "" {
		return false
	}

	if f.offered != nil && !slices.Contains(f.offered, f.eula) {
		return false
	}

	return true
}

func (f orderFields) wire() orderWire {
	return orderWire{
		ID:        f.id,
		EULA:      f.eula,
		BundleKey: f.bundleKey,
		Webhooks:  f.webhooks,
		Emails:    f.emails,
		Team:      f.team,
		Coupon:    f.coupon,
		Payment:   f.payment,
	}
}

type orderWire struct {
	ID        string   `json:"id"`
	EULA      string   `json:"eula"`
	BundleKey string   `json:"bundleKey"`
	Webhooks  []string `json:"webhooks,omitempty"`
	Emails    []string `json:"emails,omitempty"`
	Team      string   `json:"team,omitempty"`
	Coupon    string   `json:"coupon,omitempty"`
	Payment   string   `json:"payment,omitempty"`
}

type taskingOrderWire struct {
	orderWire

	Priority string  `json:"priority"`
	Cloud    float64 `json:"cloud"`
}

// OrderRequest orders an archive scene.
type OrderRequest struct {
	orderFields
}

// NewOrderRequest orders the scene with the given ordering id.
func NewOrderRequest(id, eula, bundleKey string) OrderRequest {
	return OrderRequest{orderFields{id: id, eula: eula, bundleKey: bundleKey}}
}

// NewOrderRequestFromResult orders a search result. The EULA must be one of
// the result's license hrefs for the request to be valid.
func NewOrderRequestFromResult(result *SearchResult, eula, bundleKey string) OrderRequest {
	req := OrderRequest{orderFields{eula: eula, bundleKey: bundleKey, offered: []string{}}}
	if result != nil {
		req.id = result.OrderingID
		req.offered = append(req.offered, result.LicenseHrefs()...)
	}

	return req
}

// ID returns the ordering id the request references.
func (r OrderRequest) ID() string { return r.id }

// WithEULA selects the license agreement.
func (r OrderRequest) WithEULA(eula string) OrderRequest {
	r.eula = eula

	return r
}

// WithBundle selects the bundle to order.
func (r OrderRequest) WithBundle(key string) OrderRequest {
	r.bundleKey = key

	return r
}

// WithWebhooks adds status webhook URLs.
func (r OrderRequest) WithWebhooks(urls ...string) OrderRequest {
	r.webhooks = append(slices.Clone(r.webhooks), urls...)

	return r
}

// WithEmails adds status notification addresses.
func (r OrderRequest) WithEmails(emails ...string) OrderRequest {
	r.emails = append(slices.Clone(r.emails), emails...)

	return r
}

// WithTeam shares the order with a team.
func (r OrderRequest) WithTeam(team string) OrderRequest {
	r.team = team

	return r
}

// WithCoupon applies a coupon code.
func (r OrderRequest) WithCoupon(coupon string) OrderRequest {
	r.coupon = coupon

	return r
}

// WithPayment bills a specific payment account.
func (r OrderRequest) WithPayment(payment string) OrderRequest {
	r.payment = payment

	return r
}

// Valid reports whether the request would be accepted by the server.
func (r OrderRequest) Valid() bool {
	return r.orderFields.valid()
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r OrderRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	return r.wire()
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r OrderRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}

// TaskingOrderRequest orders a tasking capture. It carries the archive order
// fields plus a priority and a cloud ceiling.
type TaskingOrderRequest struct {
	orderFields

	priority string
	cloud    float64
}

// NewTaskingOrderRequest orders the capture opportunity with the given ordering id.
func NewTaskingOrderRequest(id, eula, bundleKey, priority string, cloud float64) TaskingOrderRequest {
	return TaskingOrderRequest{
		orderFields: orderFields{id: id, eula: eula, bundleKey: bundleKey},
		priority:    priority,
		cloud:       cloud,
	}
}

// NewTaskingOrderRequestFromResult orders a tasking search result. The EULA
// must be one of the result's license hrefs for the request to be valid.
func NewTaskingOrderRequestFromResult(result *TaskingSearchResult, eula, bundleKey, priority string, cloud float64) TaskingOrderRequest {
	req := TaskingOrderRequest{
		orderFields: orderFields{eula: eula, bundleKey: bundleKey, offered: []string{}},
		priority:    priority,
		cloud:       cloud,
	}

	if result != nil {
		req.id = result.OrderingID
		req.offered = append(req.offered, result.LicenseHrefs()...)
	}

	return req
}

// ID returns the ordering id the request references.
func (r TaskingOrderRequest) ID() string { return r.id }

// WithEULA selects the license agreement.
func (r TaskingOrderRequest) WithEULA(eula string) TaskingOrderRequest {
	r.eula = eula

	return r
}

// WithBundle selects the bundle to order.
func (r TaskingOrderRequest) WithBundle(key string) TaskingOrderRequest {
	r.bundleKey = key

	return r
}

// WithPriority selects the capture priority.
func (r TaskingOrderRequest) WithPriority(priority string) TaskingOrderRequest {
	r.priority = priority

	return r
}

// WithCloud sets the cloud ceiling a capture must meet.
func (r TaskingOrderRequest) WithCloud(cloud float64) TaskingOrderRequest {
	r.cloud = cloud

	return r
}

// WithWebhooks adds status webhook URLs.
func (r TaskingOrderRequest) WithWebhooks(urls ...string) TaskingOrderRequest {
	r.webhooks = append(slices.Clone(r.webhooks), urls...)

	return r
}

// WithEmails adds status notification addresses.
func (r TaskingOrderRequest) WithEmails(emails ...string) TaskingOrderRequest {
	r.emails = append(slices.Clone(r.emails), emails...)

	return r
}

// WithTeam shares the order with a team.
func (r TaskingOrderRequest) WithTeam(team string) TaskingOrderRequest {
	r.team = team

	return r
}

// WithCoupon applies a coupon code.
func (r TaskingOrderRequest) WithCoupon(coupon string) TaskingOrderRequest {
	r.coupon = coupon

	return r
}

// WithPayment bills a specific payment account.
func (r TaskingOrderRequest) WithPayment(payment string) TaskingOrderRequest {
	r.payment = payment

	return r
}

// Valid applies the archive order rules, then requires a priority and a
// non-negative cloud ceiling.
func (r TaskingOrderRequest) Valid() bool {
	if !r.orderFields.valid() {
		return false
	}

	return r.priority != "" && finite(r.cloud) && r.cloud >= 0
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r TaskingOrderRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	return taskingOrderWire{orderWire: r.wire(), Priority: r.priority, Cloud: r.cloud}
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r TaskingOrderRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}
