package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// ResetTokenStore abstracts the short-lived password reset token storage (Redis).
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string) error
	// Consume returns the user id the token was issued for and invalidates
	// the token. A missing or expired token yields domain.ErrInvalidCredentials.
	Consume(ctx context.Context, token string) (string, error)
}

// AuthService implements registration, login and the password lifecycle.
type AuthService struct {
	repo      ports.AuthRepository
	users     ports.UserRepository
	resets    ResetTokenStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, users ports.UserRepository, resets ResetTokenStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, users: users, resets: resets, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates the credentials record and the matching profile document.
// New accounts always start as customers; role changes go through the admin API.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	creds, err := s.repo.Create(ctx, &domain.Credentials{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:        creds.UserID,
		Name:      name,
		Email:     email,
		Role:      domain.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", creds.UserID).Msg("failed to create profile after signup")
		return "", nil, err
	}

	token, err := s.generateToken(creds.UserID, creds.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", creds.UserID).Msg("user registered")
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	creds, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, creds.UserID)
	if err != nil {
		return "", nil, err
	}

	// The profile document is authoritative for the role; the credentials
	// copy is only a signup-time default.
	token, err := s.generateToken(creds.UserID, creds.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset issues a single-use token. The token is returned to
// the caller for delivery; unknown emails fail with the same error as bad
// credentials to avoid account enumeration.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	creds, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	token := newResetToken()
	if err := s.resets.Save(ctx, token, creds.UserID); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", creds.UserID).Msg("password reset requested")
	return token, nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// UpdatePassword reauthenticates with the current password before applying
// the new one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	creds, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// DeleteAccount reauthenticates, then removes the profile document and the
// credentials. The profile goes first so a half-deleted account can still
// sign in to retry.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	creds, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func (s *AuthService) generateToken(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newResetToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
