package handlers

import (
	"context"
	"net/http"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/middleware"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// ProfileService is what AuthHandler and UserHandler need from the profile service.
type ProfileService interface {
	Register(ctx context.Context, userID string, req models.RegisterUserRequest) (*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
}

// AuthHandler links identity-provider accounts to profiles
type AuthHandler struct {
	profileService ProfileService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(profileService ProfileService) *AuthHandler {
	return &AuthHandler{profileService: profileService}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, access Access) {
	g.POST("/auth/register", h.Register, access.Authenticated...)
	g.GET("/auth/me", h.Me, access.Authenticated...)
}

// Register creates the profile of the token's subject
func (h *AuthHandler) Register(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
	}

	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profileService.Register(c.Request().Context(), id.UserID, req)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the profile of the token's subject
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
	}

	user, err := h.profileService.Get(c.Request().Context(), id.UserID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}
