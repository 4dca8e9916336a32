package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// UserService implements ports.UserService.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies the non-empty input fields to the stored profile.
func (s *UserService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.ProfileImageURL != "" {
		user.ProfileImageURL = input.ProfileImageURL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Search(ctx context.Context, namePrefix string, limit int) ([]*domain.User, error) {
	return s.repo.List(ctx, ports.ListUsersFilter{NamePrefix: namePrefix, Limit: limit})
}

func (s *UserService) ListByRole(ctx context.Context, role string, limit int) ([]*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, ports.ListUsersFilter{Role: role, Limit: limit})
}

func (s *UserService) SetRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("role", role).Msg("user role changed")
	return user, nil
}

func (s *UserService) AddFavorite(ctx context.Context, userID, productID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, id := range user.Favorites {
		if id == productID {
			return user, nil
		}
	}
	user.Favorites = append(user.Favorites, productID)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, productID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := user.Favorites[:0]
	for _, id := range user.Favorites {
		if id != productID {
			kept = append(kept, id)
		}
	}
	user.Favorites = kept
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.DeviceToken = token
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}
