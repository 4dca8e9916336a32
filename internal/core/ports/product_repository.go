package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// ListProductsFilter carries the query parameters for listing products.
// Results are ordered by created_at descending unless NamePrefix is set, in
// which case they are ordered by name.
type ListProductsFilter struct {
	CategoryID string // optional: equality filter on category_id
	BrandID    string // optional: equality filter on brand_id
	NamePrefix string // optional: prefix-range search on name
	Limit      int    // optional: max rows (0 = repository default)
}

// ProductRepository defines persistence operations for the catalog:
// products plus the category and brand lookup collections.
type ProductRepository interface {
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	FindCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListBrands(ctx context.Context) ([]*domain.Brand, error)
	FindBrandByID(ctx context.Context, id string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, b *domain.Brand) error
	UpdateBrand(ctx context.Context, b *domain.Brand) error
	DeleteBrand(ctx context.Context, id string) error

	// WatchProduct streams document changes for one product until the
	// subscription is cancelled.
	WatchProduct(ctx context.Context, id string) (<-chan *domain.Product, Subscription, error)
}
