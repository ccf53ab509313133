package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/appforge/auth-api/internal/api/handler"
	"github.com/appforge/auth-api/internal/api/middleware"
	"github.com/appforge/auth-api/internal/core/ports"
	"github.com/appforge/auth-api/pkg/logger"
)

// Deps carries everything the router needs; construction of services and
// stores happens in main so the wiring stays explicit.
type Deps struct {
	AuthService ports.AuthService
	Limiter     ports.RateLimiter
	Health      *handler.HealthHandler
	Readiness   *handler.HealthDependenciesHandler

	CORSOrigins []string

	// Rate limits per client IP; zero Requests disables the limit.
	RegisterLimit ports.Limit
	LoginLimit    ports.Limit
	RefreshLimit  ports.Limit
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))
	if len(deps.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     deps.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	authHandler := handler.NewAuthHandler(deps.AuthService)
	authMiddleware := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register, limit(deps, "register", deps.RegisterLimit))
	v1.POST("/auth/login", authHandler.Login, limit(deps, "login", deps.LoginLimit))
	v1.POST("/auth/refresh", authHandler.Refresh, limit(deps, "refresh", deps.RefreshLimit))
	v1.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Health probes and metrics (no auth, no limits) ---
	e.GET("/health", deps.Health.Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func limit(deps Deps, route string, l ports.Limit) echo.MiddlewareFunc {
	if deps.Limiter == nil || l.Requests <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if l.Window <= 0 {
		l.Window = time.Minute
	}
	return middleware.RateLimit(deps.Limiter, route, l, logger.Get())
}
