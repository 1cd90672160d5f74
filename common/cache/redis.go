package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unistat/admissions/common/logger"
)

// RedisCache backs the Cache interface with Redis so the published
// statistics snapshot survives restarts and is shared across replicas.
type RedisCache struct {
	redis *redis.Client
	log   *logger.Logger
}

// NewRedisCache creates a Redis-backed cache from an existing client
func NewRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{
		redis: client,
		log:   log,
	}
}

// Get retrieves a value by key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		c.log.Error("redis GET failed", "key", key, "error", err)
		return nil, false, fmt.Errorf("get key %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores a value with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Error("redis SET failed", "key", key, "error", err)
		return fmt.Errorf("set key %s: %w", key, err)
	}
	c.log.Debug("redis SET", "key", key, "ttl", ttl)
	return nil
}

// Delete removes a value by key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.log.Error("redis DEL failed", "key", key, "error", err)
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisCache) Close() error {
	return c.redis.Close()
}
