package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketcore/marketplace-api/internal/api/metrics"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the caller's own cart. The cart id
// is always taken from the JWT, never from the URL.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get returns the caller's cart; an empty cart when none exists yet.
//
// @Summary      Get own cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Cart
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	cart, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the cart, merging with an existing line for the
// same product.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  domain.Cart
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.service.AddItem(c.Request().Context(), ports.AddItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, cart)
}

// UpdateQuantity sets the quantity of one cart line.
//
// @Summary      Update a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item_id  path      string                 true  "Cart line id"
// @Param        body     body      updateQuantityRequest  true  "New quantity"
// @Success      200      {object}  domain.Cart
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/cart/items/{item_id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.service.UpdateQuantity(c.Request().Context(), userID, c.Param("item_id"), req.Quantity)
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem drops one line from the cart. Removing the last line leaves an
// empty cart, not a missing one.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        item_id  path      string  true  "Cart line id"
// @Success      200      {object}  domain.Cart
// @Failure      404      {object}  errorResponse
// @Router       /v1/cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	cart, err := h.service.RemoveItem(c.Request().Context(), userID, c.Param("item_id"))
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, cart)
}

// Clear empties the cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204  "cart cleared"
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Watch streams cart snapshots as server-sent events.
//
// @Summary      Watch own cart
// @Tags         cart
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  "stream of cart snapshots"
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart/watch [get]
func (h *CartHandler) Watch(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ch, sub, err := h.service.Watch(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return streamSSE(c, "cart", ch, sub)
}
