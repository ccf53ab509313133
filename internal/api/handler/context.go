package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appforge/auth-api/internal/core/domain"
)

// currentUser extracts the user injected by the Auth middleware. Its
// presence proves the middleware ran; a protected handler reached without
// it is a wiring bug, answered with 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("current_user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
