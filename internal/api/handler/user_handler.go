package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// UserHandler handles the authenticated profile surface plus the admin
// user-management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the caller's profile. Omitted
// fields keep their stored value.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:          userID,
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AddFavorite adds a product to the caller's favorites. Adding an existing
// favorite is a no-op.
//
// @Summary      Add a favorite product
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  domain.User
// @Failure      404         {object}  errorResponse
// @Router       /v1/users/me/favorites/{product_id} [put]
func (h *UserHandler) AddFavorite(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.service.AddFavorite(c.Request().Context(), userID, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RemoveFavorite removes a product from the caller's favorites.
//
// @Summary      Remove a favorite product
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  domain.User
// @Router       /v1/users/me/favorites/{product_id} [delete]
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.service.RemoveFavorite(c.Request().Context(), userID, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RegisterDeviceToken records the caller's push-notification target. The
// latest token wins; re-registering the same token is harmless.
//
// @Summary      Register a device token for push notifications
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deviceTokenRequest  true  "Device token"
// @Success      204   "token registered"
// @Router       /v1/users/me/device-token [put]
func (h *UserHandler) RegisterDeviceToken(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req deviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RegisterDeviceToken(c.Request().Context(), userID, req.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchUsers looks up users by name prefix (admin only).
//
// @Summary      Search users by name
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q      query    string  false  "Name prefix"
// @Param        limit  query    int     false  "Max rows"
// @Success      200    {array}  domain.User
// @Router       /v1/admin/users [get]
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), intQueryParam(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListUsersByRole returns users holding the given role (admin only).
//
// @Summary      List users by role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role   path     string  true   "Role name"
// @Param        limit  query    int     false  "Max rows"
// @Success      200    {array}  domain.User
// @Failure      403    {object} errorResponse
// @Router       /v1/admin/users/role/{role} [get]
func (h *UserHandler) ListUsersByRole(c echo.Context) error {
	users, err := h.service.ListByRole(c.Request().Context(), c.Param("role"), intQueryParam(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user's profile (admin only).
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  domain.User
// @Failure      404      {object}  errorResponse
// @Router       /v1/admin/users/{user_id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetRole changes a user's role (admin only).
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string          true  "User id"
// @Param        body     body      setRoleRequest  true  "New role"
// @Success      200      {object}  domain.User
// @Failure      403      {object}  errorResponse
// @Router       /v1/admin/users/{user_id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), c.Param("user_id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
