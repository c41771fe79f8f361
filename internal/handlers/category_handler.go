package handlers

import (
	"context"
	"net/http"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// CategoryService is what CategoryHandler needs from the category service.
type CategoryService interface {
	List(ctx context.Context, keyword string) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id uint, name string) (*models.Category, error)
	Delete(ctx context.Context, id uint) (*models.Category, error)
}

// CategoryHandler handles HTTP requests related to categories
type CategoryHandler struct {
	categoryService CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterCategoryRoutes registers category routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group, access Access) {
	g.GET("/categories", h.GetCategories)
	g.GET("/categories/:id", h.GetCategory)
	g.POST("/categories", h.CreateCategory, access.Admin...)
	g.PUT("/categories/:id", h.UpdateCategory, access.Admin...)
	g.DELETE("/categories/:id", h.DeleteCategory, access.Admin...)
}

// GetCategories lists categories, optionally filtered by keyword
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

// GetCategory retrieves a category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category with a unique name
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes an unused category and returns the deleted row
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.Delete(c.Request().Context(), id)
	if err != nil {
		return ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, category)
}
