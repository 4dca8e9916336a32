package handler

// Request types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes. Responses reuse the domain types directly since
// their json tags already define the public shape.

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// --- Cart ---

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// --- Checkout / orders ---

type checkoutAddressRequest struct {
	Street  string `json:"street"   validate:"required"`
	City    string `json:"city"     validate:"required"`
	State   string `json:"state"    validate:"required"`
	Country string `json:"country"  validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

type checkoutPaymentRequest struct {
	Type    string `json:"type" validate:"required,oneof=cash credit_card debit_card upi wallet"`
	Details string `json:"details"`
}

type checkoutRequest struct {
	ShippingAddress checkoutAddressRequest `json:"shipping_address" validate:"required"`
	PaymentMethod   checkoutPaymentRequest `json:"payment_method"   validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Catalog (admin CRUD) ---

type productRequest struct {
	Name          string   `json:"name"        validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"       validate:"required,gt=0"`
	DiscountPrice float64  `json:"discount_price" validate:"omitempty,gt=0"`
	CategoryID    string   `json:"category_id" validate:"required"`
	BrandID       string   `json:"brand_id"`
	Images        []string `json:"images"`
	Stock         int      `json:"stock"       validate:"gte=0"`
	Available     bool     `json:"available"`
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

type brandRequest struct {
	Name        string `json:"name" validate:"required"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

// --- Profile ---

type updateProfileRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ProfileImageURL string `json:"profile_image_url"`
}

type deviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin employee"`
}
