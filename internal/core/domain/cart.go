package domain

import (
	"math"
	"time"
)

// CartItem is a single product line inside a cart. Name, UnitPrice and
// ImageURL are snapshots captured at add time so later catalog edits do not
// change the line.
type CartItem struct {
	ID        string  `json:"id" bson:"id"`
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ImageURL  string  `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
}

// Cart is the per-user singleton cart document; its id equals the owning
// user's id. Version supports optimistic concurrency on saves.
type Cart struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	UserID     string     `json:"user_id" bson:"user_id"`
	Items      []CartItem `json:"items" bson:"items"`
	TotalItems int        `json:"total_items" bson:"total_items"`
	Subtotal   float64    `json:"subtotal" bson:"subtotal"`
	Shipping   float64    `json:"shipping" bson:"shipping"`
	Tax        float64    `json:"tax" bson:"tax"`
	Total      float64    `json:"total" bson:"total"`
	Version    int64      `json:"-" bson:"version"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Recalculate recomputes every derived field from the line items:
// per-line subtotal, TotalItems, Subtotal and Total. Shipping and Tax are
// taken as already set on the cart. Invariant after the call:
// Total == Subtotal + Shipping + Tax.
func (c *Cart) Recalculate() {
	totalItems := 0
	subtotal := 0.0
	for i := range c.Items {
		c.Items[i].Subtotal = Round2(c.Items[i].UnitPrice * float64(c.Items[i].Quantity))
		totalItems += c.Items[i].Quantity
		subtotal += c.Items[i].Subtotal
	}
	c.TotalItems = totalItems
	c.Subtotal = Round2(subtotal)
	c.Total = Round2(c.Subtotal + c.Shipping + c.Tax)
}

// FindItem returns the index of the line holding productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// FindItemByID returns the index of the line with the given line id, or -1.
func (c *Cart) FindItemByID(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
