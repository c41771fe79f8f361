package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"github.com/labstack/echo/v4"
)

// PostService is what PostHandler needs from the post service.
type PostService interface {
	List(ctx context.Context, filter models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error)
	Get(ctx context.Context, id uint) (*models.PostView, error)
	Create(ctx context.Context, authorID string, req models.PostRequest) (*models.Post, error)
	Update(ctx context.Context, id uint, editorID string, req models.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

// ContentRenderer turns post content into safe HTML.
type ContentRenderer interface {
	Render(source string) (string, error)
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService  PostService
	renderer     ContentRenderer
	defaultLimit int
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostService, renderer ContentRenderer, defaultLimit int) *PostHandler {
	return &PostHandler{
		postService:  postService,
		renderer:     renderer,
		defaultLimit: defaultLimit,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, access Access) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost, access.Admin...)
	g.PUT("/posts/:id", h.UpdatePost, access.Admin...)
	g.DELETE("/posts/:id", h.DeletePost, access.Admin...)
}

// PostListResponse is one page of the post feed.
type PostListResponse struct {
	Posts       []models.PostView `json:"posts"`
	Total       int64             `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Limit       int               `json:"limit"`
	NextPage    *int              `json:"nextPage"`
}

// PostDetailResponse is a post with its rendered content.
type PostDetailResponse struct {
	models.PostView
	ContentHTML string `json:"content_html"`
}

func postFilter(c echo.Context) (models.PostFilter, error) {
	filter := models.PostFilter{Keyword: c.QueryParam("keyword")}

	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return filter, apperror.Validation("category", "category must be a positive integer")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	if raw := c.QueryParam("status"); raw != "" {
		status, ok := models.ParsePostStatus(raw)
		if !ok {
			return filter, apperror.Validation("status", "status must be draft or publish")
		}
		filter.Status = &status
	}
	return filter, nil
}

// GetPosts returns one page of posts, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	filter, err := postFilter(c)
	if err != nil {
		return ToHTTPError(err)
	}
	req := query.ParsePageRequest(c.QueryParam("page"), c.QueryParam("limit"), h.defaultLimit)

	page, err := h.postService.List(c.Request().Context(), filter, req)
	if err != nil {
		return ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, PostListResponse{
		Posts:       page.Items,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Limit:       page.Limit,
		NextPage:    page.NextPage,
	})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return ToHTTPError(err)
	}

	contentHTML, err := h.renderer.Render(post.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{Message: "Failed to render post content"}).SetInternal(err)
	}

	return c.JSON(http.StatusOK, PostDetailResponse{PostView: *post, ContentHTML: contentHTML})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return ToHTTPError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), id, user.ID, req)
	if err != nil {
		return ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and returns the deleted row
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.Delete(c.Request().Context(), id)
	if err != nil {
		return ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, post)
}
