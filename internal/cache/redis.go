package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const analysisKeyPrefix = "analysis:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache, verifying connectivity.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetAnalysis(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, analysisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil // cache miss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *RedisCache) SetAnalysis(ctx context.Context, key, analysis string, ttl time.Duration) error {
	return c.client.Set(ctx, analysisKeyPrefix+key, analysis, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
