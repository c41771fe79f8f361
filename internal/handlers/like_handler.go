package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, access Access) {
	g.POST("/posts/:id/like", h.ToggleLike, access.User...)
	g.GET("/posts/:id/like", h.GetLikeStatus, access.User...)
}

// ToggleLike likes or unlikes a post
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	state, err := h.engagement.ToggleLike(c.Request().Context(), postID, user.ID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// GetLikeStatus reports whether the current user likes a post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.engagement.LikeStatus(c.Request().Context(), postID, user.ID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"liked": liked})
}
