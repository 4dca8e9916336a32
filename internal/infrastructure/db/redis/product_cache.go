package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketcore/marketplace-api/internal/api/metrics"
	"github.com/marketcore/marketplace-api/internal/core/domain"
)

const productCacheTTL = 5 * time.Minute

// ProductCache caches single-product reads as JSON blobs.
// Key format: product:<id>
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client, ttl: productCacheTTL}
}

// Get returns the cached product, or (nil, nil) on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("product cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		// corrupt entry, treat as a miss
		_ = c.client.Del(ctx, c.key(id)).Err()
		metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("product cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(p.ID), raw, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id string) string {
	return fmt.Sprintf("product:%s", id)
}
