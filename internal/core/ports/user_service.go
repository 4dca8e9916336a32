package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields. Empty strings leave
// the stored value unchanged.
type UpdateProfileInput struct {
	UserID          string
	Name            string
	Phone           string
	Address         string
	ProfileImageURL string
}

// UserService covers profile management and the admin user surface.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
	Search(ctx context.Context, namePrefix string, limit int) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string, limit int) ([]*domain.User, error)
	// SetRole changes a user's role (admin only).
	SetRole(ctx context.Context, userID, role string) (*domain.User, error)
	AddFavorite(ctx context.Context, userID, productID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, userID, productID string) (*domain.User, error)
	// RegisterDeviceToken records the push-notification target for the user.
	RegisterDeviceToken(ctx context.Context, userID, token string) error
}
