package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// AuthRepository defines the interface for credential persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credentials, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Credentials, error)
	Create(ctx context.Context, creds *domain.Credentials) (*domain.Credentials, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}
