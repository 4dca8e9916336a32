package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 30 * time.Second

// CheckoutGuard serialises concurrent checkouts per user with a short-lived
// Redis reservation. Key format: checkout:<user_id>
type CheckoutGuard struct {
	client *redis.Client
}

func NewCheckoutGuard(client *redis.Client) *CheckoutGuard {
	return &CheckoutGuard{client: client}
}

// Acquire takes the per-user reservation. It returns false when another
// checkout already holds it. The TTL bounds how long a crashed checkout can
// block the user.
func (g *CheckoutGuard) Acquire(ctx context.Context, userID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("checkout guard acquire: %w", err)
	}
	return ok, nil
}

// Release drops the reservation.
func (g *CheckoutGuard) Release(ctx context.Context, userID string) error {
	return g.client.Del(ctx, g.key(userID)).Err()
}

func (g *CheckoutGuard) key(userID string) string {
	return fmt.Sprintf("checkout:%s", userID)
}
