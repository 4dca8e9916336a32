package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// CatalogService covers catalog browsing plus the admin CRUD surface for
// products, categories and brands.
type CatalogService interface {
	ListProducts(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SearchProducts(ctx context.Context, namePrefix string, limit int) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListBrands(ctx context.Context) ([]*domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, b *domain.Brand) (*domain.Brand, error)
	UpdateBrand(ctx context.Context, b *domain.Brand) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	WatchProduct(ctx context.Context, id string) (<-chan *domain.Product, Subscription, error)
}
