package middleware

import (
	"context"
	"strings"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/identity"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	identityKey = "identity"
	userKey     = "user"
)

// ProfileLoader loads the profile row of a verified identity.
type ProfileLoader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// FirebaseAuthMiddleware verifies the bearer token and stores the identity in the context.
// Failures are apperror values; the server's HTTPErrorHandler maps them to 401 and 403.
func FirebaseAuthMiddleware(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.Auth("Authorization header is missing", nil)
			}

			scheme, idToken, ok := strings.Cut(authHeader, " ")
			idToken = strings.TrimSpace(idToken)
			if !ok || !strings.EqualFold(scheme, "bearer") || idToken == "" {
				return apperror.Auth("Authorization header must be in Bearer format", nil)
			}

			id, err := verifier.Verify(c.Request().Context(), idToken)
			if err != nil {
				return apperror.Auth("Invalid or expired ID token", err)
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// LoadProfile requires a registered profile for the verified identity and stores it
// in the context. It must run after FirebaseAuthMiddleware.
func LoadProfile(users ProfileLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return apperror.Auth("Not authenticated", nil)
			}

			user, err := users.GetUserByID(c.Request().Context(), id.UserID)
			if err != nil {
				if apperror.Is(err, apperror.KindNotFound) {
					return apperror.Forbidden("Profile not registered")
				}
				return err
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects users without the admin role. It must run after LoadProfile.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFrom(c)
		if !ok {
			return apperror.Auth("Not authenticated", nil)
		}
		if !user.IsAdmin() {
			return apperror.Forbidden("Admin role required")
		}
		return next(c)
	}
}

// IdentityFrom returns the identity stored by FirebaseAuthMiddleware.
func IdentityFrom(c echo.Context) (identity.Identity, bool) {
	id, ok := c.Get(identityKey).(identity.Identity)
	return id, ok
}

// UserFrom returns the profile stored by LoadProfile.
func UserFrom(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userKey).(*models.User)
	return user, ok && user != nil
}
