package ports

import (
	"context"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

// AuthService covers the full account lifecycle: sign-up, sign-in, password
// reset, reauthenticated password change and account deletion.
type AuthService interface {
	// Register creates credentials and the matching profile document.
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// RequestPasswordReset issues a short-lived reset token for the account.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	// ConfirmPasswordReset consumes a reset token and sets the new password.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	// UpdatePassword reauthenticates with the current password before
	// applying the new one.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// DeleteAccount removes credentials and the profile document.
	DeleteAccount(ctx context.Context, userID, password string) error
}
