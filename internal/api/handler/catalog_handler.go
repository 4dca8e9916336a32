package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// CatalogHandler handles the public catalog reads and the admin CRUD
// endpoints for products, categories and brands.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListProducts returns products, optionally filtered by category or brand.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category_id  query     string  false  "Filter by category"
// @Param        brand_id     query     string  false  "Filter by brand"
// @Param        limit        query     int     false  "Max rows"
// @Success      200          {array}   domain.Product
// @Router       /v1/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsFilter{
		CategoryID: c.QueryParam("category_id"),
		BrandID:    c.QueryParam("brand_id"),
		Limit:      intQueryParam(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// SearchProducts returns products whose name starts with the query.
//
// @Summary      Search products by name
// @Tags         catalog
// @Produce      json
// @Param        q      query     string  true   "Name prefix"
// @Param        limit  query     int     false  "Max rows"
// @Success      200    {array}   domain.Product
// @Router       /v1/products/search [get]
func (h *CatalogHandler) SearchProducts(c echo.Context) error {
	products, err := h.service.SearchProducts(c.Request().Context(), c.QueryParam("q"), intQueryParam(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns one product.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  domain.Product
// @Failure      404         {object}  errorResponse
// @Router       /v1/products/{product_id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// WatchProduct streams product snapshots as server-sent events.
//
// @Summary      Watch a product
// @Tags         catalog
// @Produce      text/event-stream
// @Param        product_id  path  string  true  "Product id"
// @Success      200  "stream of product snapshots"
// @Router       /v1/products/{product_id}/watch [get]
func (h *CatalogHandler) WatchProduct(c echo.Context) error {
	ch, sub, err := h.service.WatchProduct(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return err
	}
	return streamSSE(c, "product", ch, sub)
}

// CreateProduct adds a catalog item (admin only).
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), productFromRequest(&req, ""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a catalog item (admin only).
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string          true  "Product id"
// @Param        body        body      productRequest  true  "Product details"
// @Success      200         {object}  domain.Product
// @Failure      404         {object}  errorResponse
// @Router       /v1/admin/products/{product_id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), productFromRequest(&req, c.Param("product_id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog item (admin only).
//
// @Summary      Delete a product
// @Tags         admin
// @Security     BearerAuth
// @Param        product_id  path  string  true  "Product id"
// @Success      204  "product deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/products/{product_id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("product_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories returns all categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category.
//
// @Summary      Get a category
// @Tags         catalog
// @Produce      json
// @Param        category_id  path      string  true  "Category id"
// @Success      200          {object}  domain.Category
// @Failure      404          {object}  errorResponse
// @Router       /v1/categories/{category_id} [get]
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	category, err := h.service.GetCategory(c.Request().Context(), c.Param("category_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a category (admin only).
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Router       /v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.CreateCategory(c.Request().Context(), &domain.Category{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory replaces a category (admin only).
//
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  path      string           true  "Category id"
// @Param        body         body      categoryRequest  true  "Category details"
// @Success      200          {object}  domain.Category
// @Failure      404          {object}  errorResponse
// @Router       /v1/admin/categories/{category_id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.UpdateCategory(c.Request().Context(), &domain.Category{
		ID:          c.Param("category_id"),
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category (admin only).
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        category_id  path  string  true  "Category id"
// @Success      204  "category deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/categories/{category_id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("category_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBrands returns all brands.
//
// @Summary      List brands
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Brand
// @Router       /v1/brands [get]
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.service.ListBrands(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brands)
}

// GetBrand returns one brand.
//
// @Summary      Get a brand
// @Tags         catalog
// @Produce      json
// @Param        brand_id  path      string  true  "Brand id"
// @Success      200       {object}  domain.Brand
// @Failure      404       {object}  errorResponse
// @Router       /v1/brands/{brand_id} [get]
func (h *CatalogHandler) GetBrand(c echo.Context) error {
	brand, err := h.service.GetBrand(c.Request().Context(), c.Param("brand_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

// CreateBrand adds a brand (admin only).
//
// @Summary      Create a brand
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      brandRequest  true  "Brand details"
// @Success      201   {object}  domain.Brand
// @Router       /v1/admin/brands [post]
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	brand, err := h.service.CreateBrand(c.Request().Context(), &domain.Brand{
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand replaces a brand (admin only).
//
// @Summary      Update a brand
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        brand_id  path      string        true  "Brand id"
// @Param        body      body      brandRequest  true  "Brand details"
// @Success      200       {object}  domain.Brand
// @Failure      404       {object}  errorResponse
// @Router       /v1/admin/brands/{brand_id} [put]
func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	brand, err := h.service.UpdateBrand(c.Request().Context(), &domain.Brand{
		ID:          c.Param("brand_id"),
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand removes a brand (admin only).
//
// @Summary      Delete a brand
// @Tags         admin
// @Security     BearerAuth
// @Param        brand_id  path  string  true  "Brand id"
// @Success      204  "brand deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/brands/{brand_id} [delete]
func (h *CatalogHandler) DeleteBrand(c echo.Context) error {
	if err := h.service.DeleteBrand(c.Request().Context(), c.Param("brand_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func productFromRequest(req *productRequest, id string) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Images:        req.Images,
		Stock:         req.Stock,
		Available:     req.Available,
	}
}
