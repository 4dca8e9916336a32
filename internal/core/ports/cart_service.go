package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// AddItemInput carries the parameters for adding a product to a cart. Price,
// name and image are snapshotted from the catalog by the service, never
// taken from the caller.
type AddItemInput struct {
	UserID    string
	ProductID string
	Quantity  int
}

// CartService implements every mutating cart operation. Each mutation
// recomputes the full set of derived totals and persists the cart as one
// snapshot write.
type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, input AddItemInput) (*domain.Cart, error)
	// UpdateQuantity sets the quantity of an existing line. Quantity must be
	// positive; use RemoveItem to drop a line.
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
	Watch(ctx context.Context, userID string) (<-chan *domain.Cart, Subscription, error)
}
