package arlula

import "slices"

// batchFields are envelope-level settings applied to every order in a batch.
type batchFields struct {
	webhooks []string
	emails   []string
	team     string
	coupon   string
	payment  string
}

type batchWire[T any] struct {
	Orders   []T      `json:"orders"`
	Webhooks []string `json:"webhooks,omitempty"`
	Emails   []string `json:"emails,omitempty"`
	Team     string   `json:"team,omitempty"`
	Coupon   string   `json:"coupon,omitempty"`
	Payment  string   `json:"payment,omitempty"`
}

func newBatchWire[T any](f batchFields, orders []T) batchWire[T] {
	return batchWire[T]{
		Orders:   orders,
		Webhooks: f.webhooks,
		Emails:   f.emails,
		Team:     f.team,
		Coupon:   f.coupon,
		Payment:  f.payment,
	}
}

// BatchOrderRequest orders several archive scenes in one transaction.
type BatchOrderRequest struct {
	orders []OrderRequest
	batchFields
}

// NewBatchOrderRequest groups archive orders.
func NewBatchOrderRequest(orders ...OrderRequest) BatchOrderRequest {
	return BatchOrderRequest{orders: slices.Clone(orders)}
}

// WithOrder adds an order to the batch.
func (r BatchOrderRequest) WithOrder(order OrderRequest) BatchOrderRequest {
	r.orders = append(slices.Clone(r.orders), order)

	return r
}

// Orders returns the orders in the batch.
func (r BatchOrderRequest) Orders() []OrderRequest {
	return slices.Clone(r.orders)
}

// WithWebhooks adds status webhook URLs for every order.
func (r BatchOrderRequest) WithWebhooks(urls ...string) BatchOrderRequest {
	r.webhooks = append(slices.Clone(r.webhooks), urls...)

	return r
}

// WithEmails adds status notification addresses for every order.
func (r BatchOrderRequest) WithEmails(emails ...string) BatchOrderRequest {
	r.emails = append(slices.Clone(r.emails), emails...)

	return r
}

// WithTeam shares every order with a team.
func (r BatchOrderRequest) WithTeam(team string) BatchOrderRequest {
	r.team = team

	return r
}

// WithCoupon applies a coupon code to the batch.
func (r BatchOrderRequest) WithCoupon(coupon string) BatchOrderRequest {
	r.coupon = coupon

	return r
}

// WithPayment bills the batch to a specific payment account.
func (r BatchOrderRequest) WithPayment(payment string) BatchOrderRequest {
	r.payment = payment

	return r
}

// Valid reports whether the batch is non-empty and every order in it is valid.
func (r BatchOrderRequest) Valid() bool {
	if len(r.orders) == 0 {
		return false
	}

	for _, order := range r.orders {
		if !order.Valid() {
			return false
		}
	}

	return true
}

// Payload returns the JSON body of the batch, or nil when invalid.
func (r BatchOrderRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	orders := make([]orderWire, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order.wire())
	}

	return newBatchWire(r.batchFields, orders)
}

// MarshalJSON renders the batch body; invalid batches render as null.
func (r BatchOrderRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}

// TaskingBatchOrderRequest orders several tasking captures in one transaction.
type TaskingBatchOrderRequest struct {
	orders []TaskingOrderRequest
	batchFields
}

// NewTaskingBatchOrderRequest groups tasking orders.
func NewTaskingBatchOrderRequest(orders ...TaskingOrderRequest) TaskingBatchOrderRequest {
	return TaskingBatchOrderRequest{orders: slices.Clone(orders)}
}

// WithOrder adds an order to the batch.
func (r TaskingBatchOrderRequest) WithOrder(order TaskingOrderRequest) TaskingBatchOrderRequest {
	r.orders = append(slices.Clone(r.orders), order)

	return r
}

// Orders returns the orders in the batch.
func (r TaskingBatchOrderRequest) Orders() []TaskingOrderRequest {
	return slices.Clone(r.orders)
}

// WithWebhooks adds status webhook URLs for every order.
func (r TaskingBatchOrderRequest) WithWebhooks(urls ...string) TaskingBatchOrderRequest {
	r.webhooks = append(slices.Clone(r.webhooks), urls...)

	return r
}

// WithEmails adds status notification addresses for every order.
func (r TaskingBatchOrderRequest) WithEmails(emails ...string) TaskingBatchOrderRequest {
	r.emails = append(slices.Clone(r.emails), emails...)

	return r
}

// WithTeam shares every order with a team.
func (r TaskingBatchOrderRequest) WithTeam(team string) TaskingBatchOrderRequest {
	r.team = team

	return r
}

// WithCoupon applies a coupon code to the batch.
func (r TaskingBatchOrderRequest) WithCoupon(coupon string) TaskingBatchOrderRequest {
	r.coupon = coupon

	return r
}

// WithPayment bills the batch to a specific payment account.
func (r TaskingBatchOrderRequest) WithPayment(payment string) TaskingBatchOrderRequest {
	r.payment = payment

	return r
}

// Valid reports whether the batch is non-empty and every order in it is valid.
func (r TaskingBatchOrderRequest) Valid() bool {
	if len(r.orders) == 0 {
		return false
	}

	for _, order := range r.orders {
		if !order.Valid() {
			return false
		}
	}

	return true
}

// Payload returns the JSON body of the batch, or nil when invalid.
func (r TaskingBatchOrderRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	orders := make([]taskingOrderWire, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, taskingOrderWire{orderWire: order.wire(), Priority: order.priority, Cloud: order.cloud})
	}

	return newBatchWire(r.batchFields, orders)
}

// MarshalJSON renders the batch body; invalid batches render as null.
func (r TaskingBatchOrderRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}
