package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache stores JSON snapshots in Redis under a common key prefix.
type SnapshotCache struct {
	client *redis.Client
	prefix string
}

// NewSnapshotCache returns nil when Redis is not configured.
func NewSnapshotCache(r *Redis, prefix string) *SnapshotCache {
	if !r.Configured() {
		return nil
	}
	return &SnapshotCache{client: r.Client, prefix: prefix}
}

// Get decodes the value stored at key into dst. A miss returns false and no error.
func (c *SnapshotCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value as JSON and stores it with ttl.
func (c *SnapshotCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}
