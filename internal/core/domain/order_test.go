package domain

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		// backward and out-of-order jumps are rejected
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusPending, StatusShipped, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	if !StatusDelivered.Terminal() {
		t.Error("delivered must be terminal")
	}
	if !StatusCancelled.Terminal() {
		t.Error("cancelled must be terminal")
	}
	if StatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
}

func TestOrder_Validate(t *testing.T) {
	valid := Order{
		Items: []OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
		ShippingAddress: Address{
			Street: "Av 1", City: "CDMX", State: "DF", Country: "MX", ZipCode: "06600",
		},
		PaymentMethod: PaymentMethod{Type: PaymentCash},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	empty := valid
	empty.Items = nil
	if err := empty.Validate(); err != ErrEmptyOrder {
		t.Errorf("empty items: got %v, want ErrEmptyOrder", err)
	}

	blankCity := valid
	blankCity.ShippingAddress.City = ""
	if err := blankCity.Validate(); err != ErrInvalidAddress {
		t.Errorf("blank city: got %v, want ErrInvalidAddress", err)
	}

	noPayment := valid
	noPayment.PaymentMethod.Type = ""
	if err := noPayment.Validate(); err != ErrInvalidPayment {
		t.Errorf("missing payment type: got %v, want ErrInvalidPayment", err)
	}
}
