package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// AddressInput holds the shipping destination supplied at checkout.
type AddressInput struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

// PaymentMethodInput holds the payment selection supplied at checkout.
type PaymentMethodInput struct {
	Type    string
	Details string
}

// CheckoutInput carries all data needed to turn the active cart into an order.
type CheckoutInput struct {
	UserID          string
	ShippingAddress AddressInput
	PaymentMethod   PaymentMethodInput
	IdempotencyKey  string
}

// CheckoutResult is returned by Checkout.
type CheckoutResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an existing order.
	AlreadyExisted bool
	// CartCleared is false when the order was written but the follow-up
	// cart-clear call failed; the steps are separate remote writes.
	CartCleared bool
}

// GetOrderInput carries the parameters to retrieve a single order. Role and
// UserID enforce ownership: customers only see their own orders.
type GetOrderInput struct {
	OrderID string
	Role    string
	UserID  string
}

// ListOrdersInput carries the parameters for the order list endpoints.
type ListOrdersInput struct {
	Role   string
	UserID string
	Status domain.OrderStatus
	Limit  int
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	Get(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	List(ctx context.Context, input ListOrdersInput) ([]*domain.Order, error)
	// UpdateStatus applies a state-machine transition (admin/employee only).
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
	// Cancel moves the order to CANCELLED; fails once DELIVERED.
	Cancel(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	Watch(ctx context.Context, input GetOrderInput) (<-chan *domain.Order, Subscription, error)
}
