package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/code-playground/domain/execution"
	"github.com/redis/go-redis/v9"
)

// OutcomeStore caches classified outcomes by submission key.
type OutcomeStore interface {
	Get(ctx context.Context, key string) (execution.Outcome, bool, error)
	Set(ctx context.Context, key string, outcome execution.Outcome) error
}

// CacheStats tracks cache statistics.
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Sets   uint64 `json:"sets"`
	Errors uint64 `json:"errors"`
}

// RedisOutcomeCache stores outcomes in Redis as JSON.
type RedisOutcomeCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  CacheStats
}

var _ OutcomeStore = (*RedisOutcomeCache)(nil)

// NewRedisOutcomeCache creates a cache over client.
func NewRedisOutcomeCache(client *redis.Client, prefix string, ttl time.Duration) *RedisOutcomeCache {
	return &RedisOutcomeCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get returns the cached outcome for key; found is false on a miss.
func (c *RedisOutcomeCache) Get(ctx context.Context, key string) (execution.Outcome, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return execution.Outcome{}, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return execution.Outcome{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var outcome execution.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return execution.Outcome{}, false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return outcome, true, nil
}

// Set stores outcome under key with the cache TTL.
func (c *RedisOutcomeCache) Set(ctx context.Context, key string, outcome execution.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Stats returns a snapshot of the cache counters.
func (c *RedisOutcomeCache) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadUint64(&c.stats.Hits),
		Misses: atomic.LoadUint64(&c.stats.Misses),
		Sets:   atomic.LoadUint64(&c.stats.Sets),
		Errors: atomic.LoadUint64(&c.stats.Errors),
	}
}

// Ping checks if the Redis connection is healthy.
func (c *RedisOutcomeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// submissionKey identifies a language and source pair.
func submissionKey(language, code string) string {
	sum := sha256.Sum256([]byte(language + "\x00" + code))
	return hex.EncodeToString(sum[:])
}
