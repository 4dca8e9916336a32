package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

type stubOrderService struct {
	checkoutFn func(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error)
	getFn      func(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error)
	listFn     func(ctx context.Context, input ports.ListOrdersInput) ([]*domain.Order, error)
	updateFn   func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
	cancelFn   func(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error)
}

func (s *stubOrderService) Checkout(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	return s.checkoutFn(ctx, input)
}

func (s *stubOrderService) Get(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	return s.getFn(ctx, input)
}

func (s *stubOrderService) List(ctx context.Context, input ports.ListOrdersInput) ([]*domain.Order, error) {
	return s.listFn(ctx, input)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	return s.updateFn(ctx, orderID, next)
}

func (s *stubOrderService) Cancel(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	return s.cancelFn(ctx, input)
}

func (s *stubOrderService) Watch(ctx context.Context, input ports.GetOrderInput) (<-chan *domain.Order, ports.Subscription, error) {
	return nil, nil, errors.New("not implemented")
}

const checkoutBody = `{
	"shipping_address": {"street":"1 Main St","city":"Pune","state":"MH","country":"IN","zip_code":"411001"},
	"payment_method": {"type":"upi","details":"alice@upi"}
}`

func TestOrderHandler_Checkout_CreatesOrder(t *testing.T) {
	stub := &stubOrderService{
		checkoutFn: func(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
			if input.UserID != "u1" {
				t.Fatalf("unexpected user: %s", input.UserID)
			}
			if input.PaymentMethod.Type != "upi" || input.ShippingAddress.City != "Pune" {
				t.Fatalf("payload not forwarded: %+v", input)
			}
			if input.IdempotencyKey != "key-1" {
				t.Fatalf("expected idempotency key, got %q", input.IdempotencyKey)
			}
			return &ports.CheckoutResult{
				Order:       &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending},
				CartCleared: true,
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/orders", checkoutBody)
	c.Request().Header.Set("Idempotency-Key", "key-1")
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	if err := handler.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["cart_cleared"] != true {
		t.Fatalf("expected cart_cleared=true, got %v", resp["cart_cleared"])
	}
}

func TestOrderHandler_Checkout_IdempotentReplayReturns200(t *testing.T) {
	stub := &stubOrderService{
		checkoutFn: func(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
			return &ports.CheckoutResult{
				Order:          &domain.Order{ID: "o1", Status: domain.StatusPending},
				AlreadyExisted: true,
				CartCleared:    true,
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/orders", checkoutBody)
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	if err := handler.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Checkout_EmptyCart(t *testing.T) {
	stub := &stubOrderService{
		checkoutFn: func(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
			return nil, domain.ErrEmptyOrder
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/orders", checkoutBody)
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	if err := handler.Checkout(c); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestOrderHandler_Checkout_MissingPaymentType(t *testing.T) {
	stub := &stubOrderService{
		checkoutFn: func(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/orders",
		`{"shipping_address":{"street":"1 Main St","city":"Pune","state":"MH","country":"IN","zip_code":"411001"},"payment_method":{"type":"bitcoin"}}`)
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	err := handler.Checkout(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestOrderHandler_Get_ForwardsOwnership(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
			if input.OrderID != "o1" || input.UserID != "u1" || input.Role != "customer" {
				t.Fatalf("ownership not forwarded: %+v", input)
			}
			return &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusShipped}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/orders/o1", "")
	c.SetParamNames("order_id")
	c.SetParamValues("o1")
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	stub := &stubOrderService{
		updateFn: func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
			return nil, domain.ErrInvalidTransition
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/v1/admin/orders/o1/status", `{"status":"delivered"}`)
	c.SetParamNames("order_id")
	c.SetParamValues("o1")
	c.Set("user_id", "admin1")
	c.Set("role", "admin")

	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderHandler_Cancel_Delivered(t *testing.T) {
	stub := &stubOrderService{
		cancelFn: func(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
			return nil, domain.ErrOrderDelivered
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/orders/o1/cancel", "")
	c.SetParamNames("order_id")
	c.SetParamValues("o1")
	c.Set("user_id", "u1")
	c.Set("role", "customer")

	if err := handler.Cancel(c); !errors.Is(err, domain.ErrOrderDelivered) {
		t.Fatalf("expected ErrOrderDelivered, got %v", err)
	}
}
