package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// User is the profile document stored per account. The document id doubles as
// the cart id for the same user.
type User struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address         string    `json:"address,omitempty" bson:"address,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty" bson:"profile_image_url,omitempty"`
	Role            string    `json:"role" bson:"role"`
	Favorites       []string  `json:"favorites,omitempty" bson:"favorites,omitempty"`
	DeviceToken     string    `json:"-" bson:"device_token,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// Credentials models the authentication record kept separately from the
// profile document.
type Credentials struct {
	UserID       string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
