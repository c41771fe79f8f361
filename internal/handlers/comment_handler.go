package handlers

import (
	"context"
	"net/http"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// EngagementService is what the comment and like handlers need.
type EngagementService interface {
	ListComments(ctx context.Context, postID uint) ([]models.CommentView, error)
	AddComment(ctx context.Context, postID uint, userID, text string) (*models.Comment, error)
	ToggleLike(ctx context.Context, postID uint, userID string) (models.LikeState, error)
	LikeStatus(ctx context.Context, postID uint, userID string) (bool, error)
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	engagement EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement EngagementService) *CommentHandler {
	return &CommentHandler{engagement: engagement}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, access Access) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment, access.User...)
}

// GetComments lists the comments of a post, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.engagement.ListComments(c.Request().Context(), postID)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"comments": comments})
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.engagement.AddComment(c.Request().Context(), postID, user.ID, req.CommentText)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}
