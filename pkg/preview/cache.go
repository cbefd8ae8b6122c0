package preview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered preview payloads keyed by canonical descriptor
// encoding. Misses are not errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// RedisCache persists rendered previews in Redis. Descriptors are immutable
// for a given document state, so entries carry a long TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultCacheTTL = 365 * 24 * time.Hour

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: defaultCacheTTL}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, "preview:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read preview cache: %w", err)
	}

	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte) error {
	err := c.client.Set(ctx, "preview:"+key, payload, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to write preview cache: %w", err)
	}

	return nil
}

// NoopCache renders every request. Used when no Redis URL is configured and
// in tests.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ []byte) error {
	return nil
}
