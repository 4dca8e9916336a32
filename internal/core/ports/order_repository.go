package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders. Results
// are always ordered by created_at descending.
type ListOrdersFilter struct {
	UserID string             // optional: equality filter on user_id (empty = all users, admin only)
	Status domain.OrderStatus // optional: equality filter on status
	Limit  int                // optional: max rows (0 = no limit)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	// UpdateStatus sets the new status conditional on the stored status
	// equaling from; returns domain.ErrInvalidTransition when the
	// precondition no longer holds and domain.ErrOrderNotFound when the
	// order does not exist.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error

	// Watch streams order snapshots for one order until the subscription is
	// cancelled.
	Watch(ctx context.Context, id string) (<-chan *domain.Order, Subscription, error)
}
