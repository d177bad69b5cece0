package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/pkg/cache"
)

type fakeRedis struct {
	counts  map[string]int64
	expires map[string]time.Duration
	incrErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.incrErr != nil {
		cmd.SetErr(f.incrErr)
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func TestRedisIncrSetsTTLOnce(t *testing.T) {
	fake := newFakeRedis()
	c := cache.NewRedisWith(fake)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.IncrWithTTL(ctx, "rl:global:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, time.Minute, fake.expires["agromart:rl:global:1.2.3.4"])
	assert.Len(t, fake.expires, 1)
}

func TestRedisIncrError(t *testing.T) {
	fake := newFakeRedis()
	fake.incrErr = errors.New("connection refused")

	_, err := cache.NewRedisWith(fake).IncrWithTTL(context.Background(), "k", time.Minute)
	assert.ErrorContains(t, err, "connection refused")
}

func TestMemoryWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := cache.NewMemory(0).WithClock(func() time.Time { return now })
	defer m.Close()
	ctx := context.Background()

	n, _ := m.IncrWithTTL(ctx, "ip", time.Minute)
	assert.Equal(t, int64(1), n)
	n, _ = m.IncrWithTTL(ctx, "ip", time.Minute)
	assert.Equal(t, int64(2), n)

	now = now.Add(time.Minute)
	n, _ = m.IncrWithTTL(ctx, "ip", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestMemoryEvict(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := cache.NewMemory(0).WithClock(func() time.Time { return now })
	ctx := context.Background()

	_, _ = m.IncrWithTTL(ctx, "a", time.Second)
	_, _ = m.IncrWithTTL(ctx, "b", time.Hour)
	now = now.Add(2 * time.Second)
	m.Evict()

	assert.Equal(t, 1, m.Len())
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
