package domain

import "testing"

func TestCart_Recalculate(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: "p1", UnitPrice: 10.00, Quantity: 2},
			{ProductID: "p2", UnitPrice: 4.50, Quantity: 3},
		},
		Shipping: 5.00,
		Tax:      2.70,
	}

	cart.Recalculate()

	if cart.Items[0].Subtotal != 20.00 {
		t.Errorf("line 0 subtotal: got %v, want 20.00", cart.Items[0].Subtotal)
	}
	if cart.Items[1].Subtotal != 13.50 {
		t.Errorf("line 1 subtotal: got %v, want 13.50", cart.Items[1].Subtotal)
	}
	if cart.TotalItems != 5 {
		t.Errorf("total items: got %d, want 5", cart.TotalItems)
	}
	if cart.Subtotal != 33.50 {
		t.Errorf("subtotal: got %v, want 33.50", cart.Subtotal)
	}
	if cart.Total != 41.20 {
		t.Errorf("total: got %v, want 41.20", cart.Total)
	}
}

func TestCart_Recalculate_Empty(t *testing.T) {
	cart := Cart{Shipping: 5.00, Tax: 1.00}
	cart.Recalculate()

	if cart.TotalItems != 0 || cart.Subtotal != 0 {
		t.Errorf("empty cart must have zero items and subtotal, got %d / %v", cart.TotalItems, cart.Subtotal)
	}
	if cart.Total != 6.00 {
		t.Errorf("total: got %v, want 6.00", cart.Total)
	}
}

func TestCart_FindItem(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ID: "l1", ProductID: "p1"},
		{ID: "l2", ProductID: "p2"},
	}}

	if i := cart.FindItem("p2"); i != 1 {
		t.Errorf("FindItem(p2): got %d, want 1", i)
	}
	if i := cart.FindItem("p9"); i != -1 {
		t.Errorf("FindItem(p9): got %d, want -1", i)
	}
	if i := cart.FindItemByID("l1"); i != 0 {
		t.Errorf("FindItemByID(l1): got %d, want 0", i)
	}
}

func TestProduct_UnitPrice(t *testing.T) {
	p := Product{Price: 100, DiscountPrice: 80}
	if p.UnitPrice() != 80 {
		t.Errorf("discounted: got %v, want 80", p.UnitPrice())
	}

	p.DiscountPrice = 0
	if p.UnitPrice() != 100 {
		t.Errorf("no discount: got %v, want 100", p.UnitPrice())
	}

	p.DiscountPrice = 120 // discount above list price is ignored
	if p.UnitPrice() != 100 {
		t.Errorf("bad discount: got %v, want 100", p.UnitPrice())
	}
}
