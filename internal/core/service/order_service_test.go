package service

import (
	"context"
	"errors"
	"testing"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

func newOrderFixture() (*OrderService, *stubOrderRepo, *stubCartRepo, *stubGuard, *stubPublisher, *stubEnqueuer) {
	orders := newStubOrderRepo()
	carts := newStubCartRepo()
	guard := &stubGuard{}
	pub := &stubPublisher{}
	enq := &stubEnqueuer{}
	svc := NewOrderService(orders, carts, guard, pub, enq, discardLogger)
	return svc, orders, carts, guard, pub, enq
}

func seedCart(carts *stubCartRepo, userID string) {
	cart := &domain.Cart{
		ID:     userID,
		UserID: userID,
		Items: []domain.CartItem{
			{ID: "itm-1", ProductID: "p1", Name: "Mouse", UnitPrice: 10.00, Quantity: 2, Subtotal: 20.00},
		},
		TotalItems: 2,
		Subtotal:   20.00,
		Shipping:   4.99,
		Tax:        1.60,
		Total:      26.59,
	}
	_ = carts.Save(context.Background(), cart)
}

func checkoutInput(userID string) ports.CheckoutInput {
	return ports.CheckoutInput{
		UserID: userID,
		ShippingAddress: ports.AddressInput{
			Street: "Av 1", City: "CDMX", State: "DF", Country: "MX", ZipCode: "06600",
		},
		PaymentMethod: ports.PaymentMethodInput{Type: domain.PaymentCash},
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	svc, orders, carts, _, pub, _ := newOrderFixture()
	seedCart(carts, "u1")

	result, err := svc.Checkout(context.Background(), checkoutInput("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Order.Status != domain.StatusPending {
		t.Errorf("initial status: got %s, want pending", result.Order.Status)
	}
	if result.Order.Total != 26.59 || result.Order.Subtotal != 20.00 {
		t.Errorf("totals not carried from cart: total=%v subtotal=%v", result.Order.Total, result.Order.Subtotal)
	}
	if len(result.Order.Items) != 1 || result.Order.Items[0].ProductID != "p1" {
		t.Errorf("items not snapshotted: %+v", result.Order.Items)
	}
	if !result.CartCleared {
		t.Error("cart should be cleared")
	}

	cart, err := carts.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("cart gone: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart not emptied: %d lines", len(cart.Items))
	}

	if len(orders.orders) != 1 {
		t.Errorf("expected one persisted order, got %d", len(orders.orders))
	}
	if len(pub.created) != 1 {
		t.Errorf("expected order.created event, got %d", len(pub.created))
	}
}

func TestOrderService_Checkout_ValidationFailures_NoWrite(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.CheckoutInput)
		want   error
		seeded bool
	}{
		{"empty cart", func(in *ports.CheckoutInput) {}, domain.ErrEmptyOrder, false},
		{"blank street", func(in *ports.CheckoutInput) { in.ShippingAddress.Street = "" }, domain.ErrInvalidAddress, true},
		{"blank zip", func(in *ports.CheckoutInput) { in.ShippingAddress.ZipCode = "" }, domain.ErrInvalidAddress, true},
		{"missing payment", func(in *ports.CheckoutInput) { in.PaymentMethod.Type = "" }, domain.ErrInvalidPayment, true},
		{"unknown payment", func(in *ports.CheckoutInput) { in.PaymentMethod.Type = "barter" }, domain.ErrInvalidPayment, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, orders, carts, _, _, _ := newOrderFixture()
			if c.seeded {
				seedCart(carts, "u1")
			}

			input := checkoutInput("u1")
			c.mutate(&input)

			_, err := svc.Checkout(context.Background(), input)
			if !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
			if len(orders.orders) != 0 {
				t.Errorf("validation failure must not write: %d orders", len(orders.orders))
			}
		})
	}
}

func TestOrderService_Checkout_CartClearFailure_OrderPersists(t *testing.T) {
	svc, orders, carts, _, _, _ := newOrderFixture()
	seedCart(carts, "u1")
	carts.clearErr = errBoom

	result, err := svc.Checkout(context.Background(), checkoutInput("u1"))
	if err != nil {
		t.Fatalf("checkout must still succeed: %v", err)
	}

	if result.CartCleared {
		t.Error("CartCleared must be false when the clear call fails")
	}
	if len(orders.orders) != 1 {
		t.Errorf("order must persist despite clear failure, got %d", len(orders.orders))
	}

	cart, _ := carts.Get(context.Background(), "u1")
	if len(cart.Items) == 0 {
		t.Error("cart must remain non-empty after failed clear")
	}
}

func TestOrderService_Checkout_IdempotentReplay(t *testing.T) {
	svc, orders, carts, _, _, _ := newOrderFixture()
	seedCart(carts, "u1")

	input := checkoutInput("u1")
	input.IdempotencyKey = "key-1"

	first, err := svc.Checkout(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	// cart is empty now; a replay with the same key must return the same
	// order without a second write
	second, err := svc.Checkout(context.Background(), input)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Error("replay must report AlreadyExisted")
	}
	if second.Order.ID != first.Order.ID {
		t.Errorf("replay returned different order: %s vs %s", second.Order.ID, first.Order.ID)
	}
	if len(orders.orders) != 1 {
		t.Errorf("replay must not create a second order, got %d", len(orders.orders))
	}
}

func TestOrderService_Checkout_GuardDenied(t *testing.T) {
	svc, _, carts, guard, _, _ := newOrderFixture()
	seedCart(carts, "u1")
	guard.denyNext = true

	_, err := svc.Checkout(context.Background(), checkoutInput("u1"))
	if !errors.Is(err, domain.ErrDuplicateCheckout) {
		t.Errorf("got %v, want ErrDuplicateCheckout", err)
	}
}

func TestOrderService_Checkout_GuardUnavailable_Proceeds(t *testing.T) {
	svc, orders, carts, guard, _, _ := newOrderFixture()
	seedCart(carts, "u1")
	guard.acquireErr = errBoom

	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err != nil {
		t.Fatalf("guard outage must not block checkout: %v", err)
	}
	if len(orders.orders) != 1 {
		t.Errorf("expected order written, got %d", len(orders.orders))
	}
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		svc, orders, _, _, _, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusDelivered}

		_, err := svc.Cancel(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleCustomer, UserID: "u1"})
		if !errors.Is(err, domain.ErrOrderDelivered) {
			t.Errorf("got %v, want ErrOrderDelivered", err)
		}
	})

	t.Run("every non-delivered status cancels", func(t *testing.T) {
		for _, from := range []domain.OrderStatus{
			domain.StatusPending, domain.StatusConfirmed, domain.StatusProcessing, domain.StatusShipped,
		} {
			svc, orders, _, _, _, enq := newOrderFixture()
			orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: from}

			got, err := svc.Cancel(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleCustomer, UserID: "u1"})
			if err != nil {
				t.Fatalf("cancel from %s: %v", from, err)
			}
			if got.Status != domain.StatusCancelled {
				t.Errorf("cancel from %s: status %s", from, got.Status)
			}
			if len(enq.jobs) != 1 {
				t.Errorf("cancel from %s: expected notification job", from)
			}
		}
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		svc, orders, _, _, pub, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusCancelled}

		got, err := svc.Cancel(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleCustomer, UserID: "u1"})
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != domain.StatusCancelled {
			t.Errorf("status: %s", got.Status)
		}
		if len(pub.statusChanges) != 0 {
			t.Error("idempotent cancel must not republish")
		}
	})

	t.Run("foreign order is forbidden", func(t *testing.T) {
		svc, orders, _, _, _, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u2", Status: domain.StatusPending}

		_, err := svc.Cancel(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleCustomer, UserID: "u1"})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition", func(t *testing.T) {
		svc, orders, _, _, pub, enq := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusPending}

		got, err := svc.UpdateStatus(ctx, "ord1", domain.StatusConfirmed)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != domain.StatusConfirmed {
			t.Errorf("status: %s", got.Status)
		}
		if len(pub.statusChanges) != 1 || len(enq.jobs) != 1 {
			t.Error("expected event and notification job")
		}
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		svc, orders, _, _, _, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusPending}

		if _, err := svc.UpdateStatus(ctx, "ord1", domain.StatusShipped); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("backward transition is rejected", func(t *testing.T) {
		svc, orders, _, _, _, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusDelivered}

		if _, err := svc.UpdateStatus(ctx, "ord1", domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, orders, _, _, _, _ := newOrderFixture()
		orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u1", Status: domain.StatusPending}

		if _, err := svc.UpdateStatus(ctx, "ord1", "lost_in_transit"); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})
}

func TestOrderService_Get_OwnershipEnforced(t *testing.T) {
	svc, orders, _, _, _, _ := newOrderFixture()
	orders.orders["ord1"] = &domain.Order{ID: "ord1", UserID: "u2", Status: domain.StatusPending}
	ctx := context.Background()

	if _, err := svc.Get(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleCustomer, UserID: "u1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("customer reading foreign order: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, ports.GetOrderInput{OrderID: "ord1", Role: domain.RoleAdmin, UserID: "admin"}); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestOrderService_List_CustomerScopedToOwnOrders(t *testing.T) {
	svc, orders, _, _, _, _ := newOrderFixture()
	orders.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}
	orders.orders["o2"] = &domain.Order{ID: "o2", UserID: "u2", Status: domain.StatusPending}
	ctx := context.Background()

	got, err := svc.List(ctx, ports.ListOrdersInput{Role: domain.RoleCustomer, UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].UserID != "u1" {
		t.Errorf("customer list leaked foreign orders: %+v", got)
	}

	all, err := svc.List(ctx, ports.ListOrdersInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("admin list: got %d, want 2", len(all))
	}
}
