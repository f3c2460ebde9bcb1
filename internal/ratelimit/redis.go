package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	client redis.Cmdable
}

func NewRedisLimiter(client redis.Cmdable) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("internal.ratelimit.NewRedisClient: failed to ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	const op = "internal.ratelimit.RedisLimiter.Allow"

	key = keyPrefix + key

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	count := incr.Val()
	ttl := ttlCmd.Val()

	// first hit in the window, or a key that lost its expiry
	if count == 1 || ttl < 0 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return Decision{}, fmt.Errorf("%s: failed to set expiry: %w", op, err)
		}

		ttl = window
	}

	if count > int64(limit) {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true}, nil
}
