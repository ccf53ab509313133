package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appforge/auth-api/internal/core/ports"
)

// incrScript counts a request and reads the window's remaining lifetime in
// one atomic round trip, so concurrent requests can never undercount.
var incrScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

// RateLimiter implements ports.RateLimiter with fixed windows in Redis.
// Key format: ratelimit:<route>:<client_id>
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

func (l *RateLimiter) Allow(ctx context.Context, clientID, route string, limit ports.Limit) (ports.Decision, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", route, clientID)

	vals, err := incrScript.Run(ctx, l.client, []string{key}, limit.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.Decision{}, fmt.Errorf("ratelimit incr: %w", err)
	}
	if len(vals) != 2 {
		return ports.Decision{}, fmt.Errorf("ratelimit incr: unexpected reply %v", vals)
	}

	count, ttlMs := vals[0], vals[1]
	if count > int64(limit.Requests) {
		retry := time.Duration(ttlMs) * time.Millisecond
		if retry < 0 {
			retry = limit.Window
		}
		return ports.Decision{Allowed: false, Remaining: 0, RetryAfter: retry}, nil
	}

	return ports.Decision{Allowed: true, Remaining: limit.Requests - int(count)}, nil
}
