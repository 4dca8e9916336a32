package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrVersionConflict  = errors.New("cart was modified concurrently")

	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidAddress    = errors.New("invalid shipping address")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderDelivered    = errors.New("cannot cancel a delivered order")
	ErrDuplicateCheckout = errors.New("checkout already in progress")
)
