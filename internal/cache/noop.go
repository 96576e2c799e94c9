package cache

import (
	"context"
	"time"
)

// NoOpCache is used when Redis is unconfigured or unavailable: every
// operation succeeds and every lookup misses.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetAnalysis(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (c *NoOpCache) SetAnalysis(ctx context.Context, key, analysis string, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
