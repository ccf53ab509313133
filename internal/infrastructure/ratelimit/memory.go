// Package ratelimit provides an in-process rate limiter for development and
// tests. Production deployments use the Redis-backed limiter so counters
// survive restarts and are shared across replicas.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/appforge/auth-api/internal/core/ports"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter implements ports.RateLimiter with fixed windows held in a
// mutex-guarded map. Increment-and-check happens under the lock, so two
// concurrent requests cannot both claim the last slot.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window), now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientID, route string, limit ports.Limit) (ports.Decision, error) {
	key := route + ":" + clientID
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(limit.Window)}
		l.windows[key] = w
	}

	w.count++
	if w.count > limit.Requests {
		return ports.Decision{Allowed: false, Remaining: 0, RetryAfter: w.resetAt.Sub(now)}, nil
	}
	return ports.Decision{Allowed: true, Remaining: limit.Requests - w.count}, nil
}
