// Package locationcache caches carrier-specific city codes in redis.
// Carriers never renumber cities in practice, so entries live without a
// TTL; the explicit invalidation command is the removal path.
package locationcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Cache implements ports.LocationCache on top of a redis client.
type Cache struct {
	client *redis.Client
}

// New creates a redis-backed location cache.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func key(carrier, query string) string {
	return fmt.Sprintf("loc:%s:%s", carrier, query)
}

// Get returns the cached code for a (carrier, query) pair.
func (c *Cache) Get(ctx context.Context, carrier, query string) (string, bool, error) {
	code, err := c.client.Get(ctx, key(carrier, query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return code, true, nil
}

// Put stores a resolved code with no expiry.
func (c *Cache) Put(ctx context.Context, carrier, query, code string) error {
	return c.client.Set(ctx, key(carrier, query), code, 0).Err()
}

// Invalidate removes one cached resolution. Removing an absent entry
// succeeds.
func (c *Cache) Invalidate(ctx context.Context, carrier, query string) error {
	return c.client.Del(ctx, key(carrier, query)).Err()
}
