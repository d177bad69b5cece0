package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "agromart"

// Commands is the subset of the go-redis client used here.
type Commands interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// Redis wraps the go-redis client with the counter operations the rate
// limiter needs.
type Redis struct {
	store Commands
	raw   *redis.Client
}

// RedisOptions configures Connect.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("cache: redis address is required")
	}
	raw := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Redis{store: raw, raw: raw}, nil
}

// NewRedisWith wraps an existing command surface. Used by tests.
func NewRedisWith(store Commands) *Redis {
	return &Redis{store: store}
}

// IncrWithTTL increments key and sets its TTL on the first increment.
func (c *Redis) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.store.Incr(ctx, namespaced(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("cache: incr %s: %w", key, err)
	}
	if ttl > 0 && count == 1 {
		if err := c.store.Expire(ctx, namespaced(key), ttl).Err(); err != nil {
			return count, fmt.Errorf("cache: expire %s: %w", key, err)
		}
	}
	return count, nil
}

// Close releases the connection pool.
func (c *Redis) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func namespaced(key string) string {
	return strings.Join([]string{keyNamespace, key}, ":")
}
