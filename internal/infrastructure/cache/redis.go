package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "product:"

// RedisCache is a product cache backed by Redis, for deployments where
// multiple instances share lookups.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a product from the cache
func (c *RedisCache) Get(ctx context.Context, barcode string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+barcode).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &product, nil
}

// Set stores a product in the cache with TTL
func (c *RedisCache) Set(ctx context.Context, barcode string, product *domain.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+barcode, data, ttl).Err()
}

// Delete removes a product from the cache
func (c *RedisCache) Delete(ctx context.Context, barcode string) error {
	return c.client.Del(ctx, redisKeyPrefix+barcode).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
