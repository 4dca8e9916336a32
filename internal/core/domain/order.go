package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// DELIVERED and CANCELLED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentUPI        = "upi"
	PaymentWallet     = "wallet"
)

// ValidPaymentType reports whether t is a supported payment type.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentUPI, PaymentWallet:
		return true
	}
	return false
}

// Address is the shipping destination captured on an order.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
}

// Complete reports whether every address field is non-blank.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Country != "" && a.ZipCode != ""
}

// PaymentMethod records how the order is paid.
type PaymentMethod struct {
	Type    string `json:"type" bson:"type"`
	Details string `json:"details,omitempty" bson:"details,omitempty"`
}

// OrderItem mirrors CartItem but is decoupled so later catalog or cart edits
// never change historical orders.
type OrderItem struct {
	ID        string  `json:"id" bson:"id"`
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ImageURL  string  `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
}

// Order is an immutable-after-creation snapshot of a cart at checkout time.
type Order struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	UserID          string        `json:"user_id" bson:"user_id"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Status          OrderStatus   `json:"status" bson:"status"`
	ShippingAddress Address       `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method" bson:"payment_method"`
	Subtotal        float64       `json:"subtotal" bson:"subtotal"`
	Shipping        float64       `json:"shipping" bson:"shipping"`
	Tax             float64       `json:"tax" bson:"tax"`
	Total           float64       `json:"total" bson:"total"`
	IdempotencyKey  string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// Validate checks the minimal creation contract: non-empty items, complete
// shipping address and a known payment type. It never writes.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if !o.ShippingAddress.Complete() {
		return ErrInvalidAddress
	}
	if !ValidPaymentType(o.PaymentMethod.Type) {
		return ErrInvalidPayment
	}
	return nil
}
