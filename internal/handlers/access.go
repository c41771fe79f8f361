package handlers

import (
	"net/http"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/middleware"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// Access holds the middleware chains that protect routes.
type Access struct {
	// Authenticated only verifies the bearer token.
	Authenticated []echo.MiddlewareFunc
	// User also requires a registered profile.
	User []echo.MiddlewareFunc
	// Admin also requires the admin role.
	Admin []echo.MiddlewareFunc
}

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
	}
	return user, nil
}
