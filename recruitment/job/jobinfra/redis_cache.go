package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/matchhire/matchhire/recruitment/job"
)

const (
	activeJobKey = "matchhire:job:active"
	activeJobTTL = 30 * time.Minute
)

// RedisActiveJobCache implements job.ActiveJobCache on Redis. The cache
// only ever holds the single active posting; every activation invalidates
// it before the new posting is written.
type RedisActiveJobCache struct {
	client *redis.Client
}

// NewRedisActiveJobCache creates a new Redis-backed active job cache
func NewRedisActiveJobCache(client *redis.Client) *RedisActiveJobCache {
	return &RedisActiveJobCache{
		client: client,
	}
}

// Get returns the cached active posting, or nil on miss
func (c *RedisActiveJobCache) Get(ctx context.Context) (*job.JobPosting, error) {
	data, err := c.client.Get(ctx, activeJobKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read active job cache: %w", err)
	}

	var posting job.JobPosting
	if err := json.Unmarshal(data, &posting); err != nil {
		// Treat a corrupt entry as a miss; the service refreshes from the DB.
		return nil, nil
	}

	return &posting, nil
}

// Set stores the active posting
func (c *RedisActiveJobCache) Set(ctx context.Context, posting *job.JobPosting) error {
	data, err := json.Marshal(posting)
	if err != nil {
		return fmt.Errorf("failed to marshal active job: %w", err)
	}

	if err := c.client.Set(ctx, activeJobKey, data, activeJobTTL).Err(); err != nil {
		return fmt.Errorf("failed to write active job cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached posting
func (c *RedisActiveJobCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeJobKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active job cache: %w", err)
	}
	return nil
}
