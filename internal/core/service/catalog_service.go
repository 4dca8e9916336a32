package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// ProductCache abstracts the cache-aside store (Redis) in front of single
// product reads. A nil-product, nil-error Get is a miss.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

// CatalogService implements ports.CatalogService.
type CatalogService struct {
	repo  ports.ProductRepository
	cache ProductCache
	log   zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, cache ProductCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// GetProduct reads through the cache. Cache failures degrade to repository
// reads, never to request failures.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
	}
	return product, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, namePrefix string, limit int) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ListProductsFilter{NamePrefix: namePrefix, Limit: limit})
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindCategoryByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *CatalogService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	return s.repo.FindBrandByID(ctx, id)
}

func (s *CatalogService) CreateBrand(ctx context.Context, b *domain.Brand) (*domain.Brand, error) {
	if err := s.repo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, b *domain.Brand) (*domain.Brand, error) {
	if err := s.repo.UpdateBrand(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id string) error {
	return s.repo.DeleteBrand(ctx, id)
}

func (s *CatalogService) WatchProduct(ctx context.Context, id string) (<-chan *domain.Product, ports.Subscription, error) {
	return s.repo.WatchProduct(ctx, id)
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}
