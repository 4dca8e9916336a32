package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// saveRetries bounds the compare-and-swap retry loop on concurrent cart writes.
const saveRetries = 3

// Pricing holds the fixed checkout inputs applied to every cart.
type Pricing struct {
	// TaxRate is applied to the subtotal, rounded to cents.
	TaxRate float64
	// FlatShipping is charged on any non-empty cart.
	FlatShipping float64
}

// CartService implements ports.CartService. Every mutation is a
// read-modify-write of the whole cart document guarded by a version check,
// so two concurrent quantity increments cannot silently drop one another.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	pricing  Pricing
	log      zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, pricing Pricing, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, pricing: pricing, log: log}
}

// Get returns the user's cart. A user without a cart document yet gets an
// empty snapshot; the document is only written on the first mutation.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return s.emptyCart(userID), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts a product into the cart, snapshotting its current name, unit
// price and image. Adding a product already present increments the existing
// line instead of creating a duplicate.
func (s *CartService) AddItem(ctx context.Context, input ports.AddItemInput) (*domain.Cart, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, domain.ErrProductNotFound
	}

	return s.mutate(ctx, input.UserID, func(cart *domain.Cart) error {
		if i := cart.FindItem(product.ID); i >= 0 {
			cart.Items[i].Quantity += input.Quantity
			return nil
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        newItemID(),
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice(),
			Quantity:  input.Quantity,
			ImageURL:  firstImage(product),
		})
		return nil
	})
}

// UpdateQuantity sets the quantity of an existing line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	return s.mutate(ctx, userID, func(cart *domain.Cart) error {
		i := cart.FindItemByID(itemID)
		if i < 0 {
			return domain.ErrCartItemNotFound
		}
		cart.Items[i].Quantity = quantity
		return nil
	})
}

// RemoveItem drops a line. Removing the last line leaves an empty cart
// document, never a deleted one.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) error {
		i := cart.FindItemByID(itemID)
		if i < 0 {
			return domain.ErrCartItemNotFound
		}
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

func (s *CartService) Watch(ctx context.Context, userID string) (<-chan *domain.Cart, ports.Subscription, error) {
	return s.carts.Watch(ctx, userID)
}

// mutate loads the cart, applies fn, reprices and saves the full snapshot.
// A version conflict means another writer won the race; the operation is
// replayed against the fresh document up to saveRetries times.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	for attempt := 0; attempt < saveRetries; attempt++ {
		cart, err := s.carts.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrCartNotFound) {
				return nil, err
			}
			cart = s.emptyCart(userID)
		}

		if err := fn(cart); err != nil {
			return nil, err
		}

		s.reprice(cart)
		cart.UpdatedAt = time.Now().UTC()

		err = s.carts.Save(ctx, cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}
		s.log.Debug().Str("user_id", userID).Int("attempt", attempt+1).Msg("cart version conflict, retrying")
	}
	return nil, domain.ErrVersionConflict
}

// reprice recomputes every derived total. Shipping drops to zero when the
// cart empties; tax follows the subtotal.
func (s *CartService) reprice(cart *domain.Cart) {
	cart.Recalculate()
	if len(cart.Items) == 0 {
		cart.Shipping = 0
	} else {
		cart.Shipping = s.pricing.FlatShipping
	}
	cart.Tax = domain.Round2(cart.Subtotal * s.pricing.TaxRate)
	cart.Total = domain.Round2(cart.Subtotal + cart.Shipping + cart.Tax)
}

func (s *CartService) emptyCart(userID string) *domain.Cart {
	return &domain.Cart{
		ID:     userID,
		UserID: userID,
		Items:  []domain.CartItem{},
	}
}

func firstImage(p *domain.Product) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// newItemID returns a cart line id in the format itm-XXXXXXXX.
func newItemID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("itm-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("itm-%08X", b)
}
