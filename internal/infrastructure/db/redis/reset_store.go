package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketcore/marketplace-api/internal/core/domain"
)

const resetTokenTTL = 15 * time.Minute

// ResetTokenStore keeps single-use password reset tokens.
// Key format: pwreset:<token>
type ResetTokenStore struct {
	client *redis.Client
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

func (s *ResetTokenStore) Save(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, s.key(token), userID, resetTokenTTL).Err()
}

// Consume atomically reads and deletes the token so it cannot be replayed.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("reset token consume: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) key(token string) string {
	return fmt.Sprintf("pwreset:%s", token)
}
