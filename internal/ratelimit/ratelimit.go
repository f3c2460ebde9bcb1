// Package ratelimit counts requests per key over fixed windows.
package ratelimit

import (
	"context"
	"time"
)

type Decision struct {
	Allowed bool
	// RetryAfter is how long until the key may try again; zero when allowed.
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}
