package services

import (
	"context"
	"strings"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
)

const msgCategoryNameTaken = "name already exists"

// CategoryService guards category writes with uniqueness and dependent-post checks.
type CategoryService struct {
	categories repositories.CategoryRepository
	posts      DependentCounter
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories repositories.CategoryRepository, posts DependentCounter) *CategoryService {
	return &CategoryService{categories: categories, posts: posts}
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperror.Validation("name", "name is required")
	}
	return name, nil
}

// List returns categories whose name contains keyword, ignoring case.
func (s *CategoryService) List(ctx context.Context, keyword string) ([]models.Category, error) {
	return s.categories.ListCategories(ctx, keyword)
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.GetCategoryByID(ctx, id)
}

// Create adds a category. "Travel" and "travel" are different names.
func (s *CategoryService) Create(ctx context.Context, rawName string) (*models.Category, error) {
	name, err := categoryName(rawName)
	if err != nil {
		return nil, err
	}
	if err := AssertUniqueName[uint](ctx, s.categories, name, nil, msgCategoryNameTaken); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category. Keeping the current name is not a conflict.
func (s *CategoryService) Update(ctx context.Context, id uint, rawName string) (*models.Category, error) {
	name, err := categoryName(rawName)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AssertUniqueName[uint](ctx, s.categories, name, &id, msgCategoryNameTaken); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that no post references and returns the removed row.
func (s *CategoryService) Delete(ctx context.Context, id uint) (*models.Category, error) {
	if _, err := s.categories.GetCategoryByID(ctx, id); err != nil {
		return nil, err
	}
	if err := AssertNoDependents(ctx, s.posts, id); err != nil {
		return nil, err
	}
	return s.categories.DeleteCategory(ctx, id)
}
