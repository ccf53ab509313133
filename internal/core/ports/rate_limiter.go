package ports

import (
	"context"
	"time"
)

// Limit is a fixed-window quota: at most Requests per Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is how long the client should wait before retrying.
	// Zero when Allowed.
	RetryAfter time.Duration
}

// RateLimiter bounds request rate per client per route. Allow both counts
// the request and decides in a single atomic step.
type RateLimiter interface {
	Allow(ctx context.Context, clientID, route string, limit Limit) (Decision, error)
}
