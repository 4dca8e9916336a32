package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// CheckoutGuard abstracts the Redis reservation that stops two concurrent
// checkouts for the same user from both writing an order.
type CheckoutGuard interface {
	// Acquire reserves the checkout slot; false means another checkout for
	// this user is already in flight.
	Acquire(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

// NotificationEnqueuer hands a notification job to the async dispatcher.
type NotificationEnqueuer interface {
	Enqueue(job ports.NotificationJob)
}

// OrderService implements ports.OrderService.
type OrderService struct {
	orders    ports.OrderRepository
	carts     ports.CartRepository
	guard     CheckoutGuard
	publisher ports.OrderEventPublisher
	notify    NotificationEnqueuer
	log       zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	carts ports.CartRepository,
	guard CheckoutGuard,
	publisher ports.OrderEventPublisher,
	notify NotificationEnqueuer,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		guard:     guard,
		publisher: publisher,
		notify:    notify,
		log:       log,
	}
}

// Checkout reads the active cart, validates the would-be order, writes it and
// clears the cart. Order write and cart clear are separate remote calls with
// no transaction: a failed clear leaves the order in place and is reported
// through CheckoutResult.CartCleared.
func (s *OrderService) Checkout(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_id", existing.ID).Msg("idempotent replay")
			return &ports.CheckoutResult{Order: existing, AlreadyExisted: true, CartCleared: true}, nil
		}
	}

	ok, err := s.guard.Acquire(ctx, input.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("checkout guard unavailable, proceeding")
	} else if !ok {
		return nil, domain.ErrDuplicateCheckout
	} else {
		defer func() {
			if relErr := s.guard.Release(context.WithoutCancel(ctx), input.UserID); relErr != nil {
				s.log.Warn().Err(relErr).Str("user_id", input.UserID).Msg("failed to release checkout guard")
			}
		}()
	}

	cart, err := s.carts.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, domain.ErrEmptyOrder
		}
		return nil, fmt.Errorf("checkout: read cart: %w", err)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID: input.UserID,
		Items:  orderItemsFromCart(cart),
		Status: domain.StatusPending,
		ShippingAddress: domain.Address{
			Street:  input.ShippingAddress.Street,
			City:    input.ShippingAddress.City,
			State:   input.ShippingAddress.State,
			Country: input.ShippingAddress.Country,
			ZipCode: input.ShippingAddress.ZipCode,
		},
		PaymentMethod: domain.PaymentMethod{
			Type:    input.PaymentMethod.Type,
			Details: input.PaymentMethod.Details,
		},
		Subtotal:       cart.Subtotal,
		Shipping:       cart.Shipping,
		Tax:            cart.Tax,
		Total:          cart.Total,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Validation happens before any write; a failed check aborts with no
	// partial state.
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("checkout: create order: %w", err)
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order created event")
	}

	result := &ports.CheckoutResult{Order: order, CartCleared: true}
	if err := s.carts.Clear(ctx, input.UserID); err != nil {
		// The order is already durable; the stale cart is surfaced to the
		// caller instead of rolled back.
		s.log.Error().Err(err).Str("order_id", order.ID).Str("user_id", input.UserID).Msg("order created but cart clear failed")
		result.CartCleared = false
	}

	s.log.Info().Str("order_id", order.ID).Str("user_id", input.UserID).Float64("total", order.Total).Msg("order created")
	return result, nil
}

// Get retrieves one order. Customers only see their own.
func (s *OrderService) Get(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.Role == domain.RoleCustomer && order.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// List returns orders newest first. Customers are always scoped to their own
// user id regardless of what they ask for.
func (s *OrderService) List(ctx context.Context, input ports.ListOrdersInput) ([]*domain.Order, error) {
	filter := ports.ListOrdersFilter{
		UserID: input.UserID,
		Status: input.Status,
		Limit:  input.Limit,
	}
	// Only admin and employee may list across users.
	if input.Role == domain.RoleCustomer && filter.UserID == "" {
		return nil, domain.ErrForbidden
	}
	return s.orders.List(ctx, filter)
}

// UpdateStatus applies a single state-machine transition.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(next) {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if !previous.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, previous, next)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, previous, next); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now().UTC()

	s.afterStatusChange(ctx, order, previous)

	s.log.Info().Str("order_id", orderID).Str("from", string(previous)).Str("to", string(next)).Msg("order status updated")
	return order, nil
}

// Cancel moves the order to CANCELLED. Delivered orders cannot be cancelled;
// cancelling an already cancelled order is a no-op.
func (s *OrderService) Cancel(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.Role == domain.RoleCustomer && order.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}

	switch order.Status {
	case domain.StatusDelivered:
		return nil, domain.ErrOrderDelivered
	case domain.StatusCancelled:
		return order, nil
	}

	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, input.OrderID, previous, domain.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.StatusCancelled
	order.UpdatedAt = time.Now().UTC()

	s.afterStatusChange(ctx, order, previous)

	s.log.Info().Str("order_id", input.OrderID).Str("from", string(previous)).Msg("order cancelled")
	return order, nil
}

func (s *OrderService) Watch(ctx context.Context, input ports.GetOrderInput) (<-chan *domain.Order, ports.Subscription, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if input.Role == domain.RoleCustomer && order.UserID != input.UserID {
		return nil, nil, domain.ErrForbidden
	}
	return s.orders.Watch(ctx, input.OrderID)
}

// afterStatusChange emits the broker event and queues the push notification.
// Both are best effort; the status write already succeeded.
func (s *OrderService) afterStatusChange(ctx context.Context, order *domain.Order, previous domain.OrderStatus) {
	if err := s.publisher.PublishOrderStatusChanged(ctx, order, previous); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish status change event")
	}
	s.notify.Enqueue(ports.NotificationJob{
		UserID:   order.UserID,
		OrderID:  order.ID,
		Status:   order.Status,
		Previous: previous,
	})
}

func orderItemsFromCart(cart *domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
			Subtotal:  it.Subtotal,
		})
	}
	return items
}
