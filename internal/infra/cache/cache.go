// Package cache wraps the optional Redis read cache used by the listing
// endpoints. The ledger never reads through it; it only shortens hot reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/betledger/betledger/internal/config"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect opens a Redis client and verifies connectivity.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Get unmarshals the cached value into dest. The second return reports
// whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}

	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores value as JSON under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Delete invalidates a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
