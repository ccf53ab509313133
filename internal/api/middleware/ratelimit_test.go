package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/appforge/auth-api/internal/core/ports"
)

type stubLimiter struct {
	decision ports.Decision
	err      error
	lastKey  string
}

func (s *stubLimiter) Allow(_ context.Context, clientID, route string, _ ports.Limit) (ports.Decision, error) {
	s.lastKey = route + ":" + clientID
	return s.decision, s.err
}

func runRateLimit(t *testing.T, limiter ports.RateLimiter) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	limit := ports.Limit{Requests: 10, Window: time.Minute}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RateLimit(limiter, "login", limit, zerolog.Nop())(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{decision: ports.Decision{Allowed: true, Remaining: 7}}

	rec := runRateLimit(t, limiter)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "7" {
		t.Fatalf("expected remaining header 7, got %q", got)
	}
	if limiter.lastKey != "login:1.2.3.4" {
		t.Fatalf("unexpected limiter key: %s", limiter.lastKey)
	}
}

func TestRateLimit_Denied(t *testing.T) {
	limiter := &stubLimiter{decision: ports.Decision{Allowed: false, RetryAfter: 42 * time.Second}}

	rec := runRateLimit(t, limiter)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Fatalf("expected Retry-After 42, got %q", got)
	}
}

func TestRateLimit_FailsOpenOnBackendError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}

	rec := runRateLimit(t, limiter)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}
