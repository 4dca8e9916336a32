package domain

import "time"

// Product is a catalog item. CategoryID and BrandID reference lookup
// documents by id. Price and Stock are expected to be non-negative; the
// admin API enforces this at the edge.
type Product struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty" bson:"discount_price,omitempty"`
	CategoryID    string    `json:"category_id" bson:"category_id"`
	BrandID       string    `json:"brand_id" bson:"brand_id"`
	Images        []string  `json:"images,omitempty" bson:"images,omitempty"`
	Stock         int       `json:"stock" bson:"stock"`
	Rating        float64   `json:"rating" bson:"rating"`
	Reviews       int       `json:"reviews" bson:"reviews"`
	Available     bool      `json:"available" bson:"available"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// UnitPrice returns the price a cart line should capture: the discount price
// when one is set, the list price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

// Category is a lookup entity referenced by Product.CategoryID.
type Category struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Brand is a lookup entity referenced by Product.BrandID.
type Brand struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	LogoURL     string `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}
