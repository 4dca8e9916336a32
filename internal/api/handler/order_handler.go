package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketcore/marketplace-api/internal/api/metrics"
	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// OrderHandler handles checkout and the order lifecycle endpoints.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type checkoutResponse struct {
	Order *domain.Order `json:"order"`
	// CartCleared is false when the order was created but the cart could not
	// be emptied; the client should refresh the cart.
	CartCleared bool `json:"cart_cleared"`
}

// Checkout turns the caller's cart into an order.
//
// @Summary      Checkout the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      checkoutRequest  true   "Shipping address and payment method"
// @Success      201              {object}  checkoutResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID: userID,
		ShippingAddress: ports.AddressInput{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			Country: req.ShippingAddress.Country,
			ZipCode: req.ShippingAddress.ZipCode,
		},
		PaymentMethod: ports.PaymentMethodInput{
			Type:    req.PaymentMethod.Type,
			Details: req.PaymentMethod.Details,
		},
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if !result.AlreadyExisted {
		metrics.OrdersCreatedTotal.WithLabelValues(result.Order.PaymentMethod.Type).Inc()
	}
	if !result.CartCleared {
		metrics.CheckoutCartClearFailuresTotal.Inc()
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, checkoutResponse{Order: result.Order, CartCleared: result.CartCleared})
}

// Get returns one order. Customers can only read their own.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  domain.Order
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/orders/{order_id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("order_id"),
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List returns the caller's orders, newest first.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        limit   query     int     false  "Max rows"
// @Success      200     {array}   domain.Order
// @Failure      401     {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		Role:   role,
		UserID: userID,
		Status: domain.OrderStatus(c.QueryParam("status")),
		Limit:  intQueryParam(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// ListAll returns orders across all users (admin/employee only).
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Filter by user"
// @Param        status   query     string  false  "Filter by status"
// @Param        limit    query     int     false  "Max rows"
// @Success      200      {array}   domain.Order
// @Failure      403      {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		Role:   role,
		UserID: c.QueryParam("user_id"),
		Status: domain.OrderStatus(c.QueryParam("status")),
		Limit:  intQueryParam(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus applies a lifecycle transition (admin/employee only).
//
// @Summary      Update order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string                    true  "Order id"
// @Param        body      body      updateOrderStatusRequest  true  "Target status"
// @Success      200       {object}  domain.Order
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/admin/orders/{order_id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("order_id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Cancel moves the order to CANCELLED. Fails once delivered.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  domain.Order
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/orders/{order_id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Cancel(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("order_id"),
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(domain.StatusCancelled)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Watch streams order snapshots as server-sent events.
//
// @Summary      Watch an order
// @Tags         orders
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        order_id  path  string  true  "Order id"
// @Success      200  "stream of order snapshots"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{order_id}/watch [get]
func (h *OrderHandler) Watch(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ch, sub, err := h.service.Watch(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("order_id"),
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		return err
	}
	return streamSSE(c, "order", ch, sub)
}
