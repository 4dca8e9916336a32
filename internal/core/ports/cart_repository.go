package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// CartRepository persists the per-user singleton cart document.
type CartRepository interface {
	// Get returns the cart for userID, or domain.ErrCartNotFound when no
	// document exists yet.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Save persists the full cart snapshot. The write is conditional on
	// cart.Version matching the stored document (compare-and-swap); on a
	// mismatch it returns domain.ErrVersionConflict. A cart with Version 0
	// is inserted.
	Save(ctx context.Context, cart *domain.Cart) error
	// Clear resets the cart to an empty snapshot. The document is kept, not
	// deleted.
	Clear(ctx context.Context, userID string) error

	// Watch streams cart snapshots for userID until the subscription is
	// cancelled.
	Watch(ctx context.Context, userID string) (<-chan *domain.Cart, Subscription, error)
}
