package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter is a per-process token bucket per key. It is used when Redis
// is disabled, so limits are not shared between instances.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(ttl time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}

	go l.cleanup(time.Minute)

	return l
}

func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *MemoryLimiter) limiter(key string, limit int, window time.Duration) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)}
		l.visitors[key] = v
	}

	v.lastSeen = l.now()

	return v.limiter
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true}, nil
	}

	reservation := l.limiter(key, limit, window).ReserveN(l.now(), 1)
	if !reservation.OK() {
		return Decision{Allowed: false, RetryAfter: window}, nil
	}

	delay := reservation.DelayFrom(l.now())
	if delay == 0 {
		return Decision{Allowed: true}, nil
	}

	reservation.CancelAt(l.now())

	return Decision{Allowed: false, RetryAfter: delay}, nil
}

func (l *MemoryLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.evict()
		}
	}
}

func (l *MemoryLimiter) evict() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}
