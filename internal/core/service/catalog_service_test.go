package service

import (
	"context"
	"errors"
	"testing"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

func newCatalogFixture() (*CatalogService, *stubProductRepo, *stubCache) {
	repo := newStubProductRepo()
	cache := newStubCache()
	return NewCatalogService(repo, cache, discardLogger), repo, cache
}

func TestCatalogService_GetProduct_PopulatesAndUsesCache(t *testing.T) {
	svc, repo, cache := newCatalogFixture()
	ctx := context.Background()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Mouse", Price: 10.00, Available: true}

	// first read misses the cache and hits the repository
	p, err := svc.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Mouse" {
		t.Errorf("got %s", p.Name)
	}
	if repo.findCalls != 1 {
		t.Fatalf("findCalls = %d, want 1", repo.findCalls)
	}

	// second read is served from the cache
	if _, err := svc.GetProduct(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if repo.findCalls != 1 {
		t.Errorf("findCalls = %d after cached read, want 1", repo.findCalls)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
}

func TestCatalogService_GetProduct_CacheOutageDegradesToRepo(t *testing.T) {
	svc, repo, cache := newCatalogFixture()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Mouse", Price: 10.00}
	cache.getErr = errBoom

	p, err := svc.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("cache outage must not fail the read: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("got %s", p.ID)
	}
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	if _, err := svc.GetProduct(context.Background(), "ghost"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
}

func TestCatalogService_UpdateProduct_InvalidatesCache(t *testing.T) {
	svc, repo, cache := newCatalogFixture()
	ctx := context.Background()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Mouse", Price: 10.00}

	if _, err := svc.GetProduct(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.entries["p1"]; !ok {
		t.Fatal("expected cached entry after read")
	}

	if _, err := svc.UpdateProduct(ctx, &domain.Product{ID: "p1", Name: "Mouse", Price: 12.00}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.entries["p1"]; ok {
		t.Error("cache entry must be invalidated on update")
	}

	p, err := svc.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 12.00 {
		t.Errorf("stale price %v", p.Price)
	}
}

func TestCatalogService_DeleteProduct_InvalidatesCache(t *testing.T) {
	svc, repo, cache := newCatalogFixture()
	ctx := context.Background()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Mouse"}
	cache.entries["p1"] = &domain.Product{ID: "p1", Name: "Mouse"}

	if err := svc.DeleteProduct(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.entries["p1"]; ok {
		t.Error("cache entry must be invalidated on delete")
	}
	if _, err := svc.GetProduct(ctx, "p1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
}

func TestCatalogService_ListProducts_Filters(t *testing.T) {
	svc, repo, _ := newCatalogFixture()
	ctx := context.Background()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Mouse", CategoryID: "c1", BrandID: "b1"}
	repo.products["p2"] = &domain.Product{ID: "p2", Name: "Keyboard", CategoryID: "c1", BrandID: "b2"}
	repo.products["p3"] = &domain.Product{ID: "p3", Name: "Monitor", CategoryID: "c2", BrandID: "b1"}

	byCategory, err := svc.ListProducts(ctx, ports.ListProductsFilter{CategoryID: "c1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 2 {
		t.Errorf("category filter: got %d products, want 2", len(byCategory))
	}

	byBrand, err := svc.ListProducts(ctx, ports.ListProductsFilter{BrandID: "b1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byBrand) != 2 {
		t.Errorf("brand filter: got %d products, want 2", len(byBrand))
	}

	byPrefix, err := svc.SearchProducts(ctx, "Mo", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(byPrefix) != 2 {
		t.Errorf("prefix search: got %d products, want 2", len(byPrefix))
	}
}

func TestCatalogService_CategoryAndBrandCRUD(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, &domain.Category{Name: "Peripherals"})
	if err != nil {
		t.Fatal(err)
	}
	if cat.ID == "" {
		t.Fatal("category id not assigned")
	}
	if _, err := svc.GetCategory(ctx, cat.ID); err != nil {
		t.Errorf("get category: %v", err)
	}
	if _, err := svc.GetCategory(ctx, "ghost"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("got %v, want ErrCategoryNotFound", err)
	}

	brand, err := svc.CreateBrand(ctx, &domain.Brand{Name: "Logi"})
	if err != nil {
		t.Fatal(err)
	}
	brand.Name = "Logitech"
	if _, err := svc.UpdateBrand(ctx, brand); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetBrand(ctx, brand.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Logitech" {
		t.Errorf("brand name = %s", got.Name)
	}

	if err := svc.DeleteBrand(ctx, brand.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetBrand(ctx, brand.ID); !errors.Is(err, domain.ErrBrandNotFound) {
		t.Errorf("got %v, want ErrBrandNotFound", err)
	}
}
