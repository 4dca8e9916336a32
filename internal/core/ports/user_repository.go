package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing user profiles.
// Results are ordered by name ascending.
type ListUsersFilter struct {
	Role       string // optional: equality filter on role
	NamePrefix string // optional: prefix-range search on name
	Limit      int    // optional: max rows (0 = repository default)
}

// UserRepository persists user profile documents.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
}
