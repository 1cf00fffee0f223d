package executor

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) *RedisOutcomeCache {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisOutcomeCache(client, "test:outcome:"+t.Name()+":", time.Minute)
}

func TestRedisOutcomeCache_GetSet(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()
	key := submissionKey("python", "print(1)")

	_, found, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	want := successOutcome("1")
	require.NoError(t, cache.Set(ctx, key, want))

	got, found, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Sets)
}

func TestSubmissionKey(t *testing.T) {
	assert.Equal(t, submissionKey("python", "x"), submissionKey("python", "x"))
	assert.NotEqual(t, submissionKey("python", "x"), submissionKey("javascript", "x"))
	assert.NotEqual(t, submissionKey("py", "thonx"), submissionKey("python", "x"))
	assert.Len(t, submissionKey("cpp", ""), 64)
}
