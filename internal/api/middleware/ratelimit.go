package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/appforge/auth-api/internal/api/metrics"
	"github.com/appforge/auth-api/internal/core/ports"
)

// RateLimit bounds requests per client IP for a single named route. The
// check-and-count is a single atomic step inside the limiter. If the
// limiter backend itself fails the request is let through: availability is
// preferred over strict limiting.
func RateLimit(limiter ports.RateLimiter, route string, limit ports.Limit, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := c.RealIP()
			if clientID == "" {
				clientID = "unknown"
			}

			d, err := limiter.Allow(c.Request().Context(), clientID, route, limit)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, failing open")
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "too many requests",
					"retry_after": secs,
				})
			}

			return next(c)
		}
	}
}
