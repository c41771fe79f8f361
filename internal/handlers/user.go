package handlers

import (
	"net/http"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	profileService ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileService ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, access Access) {
	g.GET("/profile", h.GetProfile, access.User...)
	g.PUT("/profile", h.UpdateProfile, access.User...)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.profileService.Update(c.Request().Context(), user.ID, req)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
