package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context, keyword string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) (*models.Category, error)
	CountByName(ctx context.Context, name string, excludingID *uint) (int64, error)
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	store
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB, timeout time.Duration) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{store: newStore(db, timeout)}
}

func errCategoryNotFound() error { return apperror.NotFound("category not found") }

// CategoryPredicate filters categories by a case-insensitive name substring.
func CategoryPredicate(keyword string) query.Predicate {
	return query.Predicate{}.AndIf(query.Keyword(keyword, "name"))
}

// CreateCategory inserts a category. The unique constraint on name is the final arbiter
// for concurrent creators that both passed the pre-check.
func (r *PostgresCategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	if err := tx.Create(category).Error; err != nil {
		if isUniqueViolation(err, constraintCategoryNameKey) {
			return apperror.Conflict("name already exists")
		}
		return dataErr("create category", err)
	}
	return nil
}

// GetCategoryByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var category models.Category
	if err := tx.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound()
		}
		return nil, dataErr("get category", err)
	}
	return &category, nil
}

// ListCategories returns every category matching keyword, oldest first.
func (r *PostgresCategoryRepository) ListCategories(ctx context.Context, keyword string) ([]models.Category, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	categories := []models.Category{}
	err := CategoryPredicate(keyword).Apply(tx.Model(&models.Category{})).
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, dataErr("list categories", err)
	}
	return categories, nil
}

// UpdateCategory renames a category.
func (r *PostgresCategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	res := tx.Model(&models.Category{}).Where("id = ?", category.ID).Update("name", category.Name)
	if res.Error != nil {
		if isUniqueViolation(res.Error, constraintCategoryNameKey) {
			return apperror.Conflict("name already exists")
		}
		return dataErr("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return errCategoryNotFound()
	}
	return nil
}

// DeleteCategory removes a category and returns the deleted row. A post inserted after
// the dependents check still blocks the delete through the RESTRICT foreign key.
func (r *PostgresCategoryRepository) DeleteCategory(ctx context.Context, id uint) (*models.Category, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var deleted models.Category
	res := tx.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&deleted)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error, constraintPostsCategoryFK) {
			return nil, apperror.Conflict("category in use")
		}
		return nil, dataErr("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errCategoryNotFound()
	}
	return &deleted, nil
}

// CountByName counts categories whose name matches exactly (case-sensitive),
// ignoring excludingID when set.
func (r *PostgresCategoryRepository) CountByName(ctx context.Context, name string, excludingID *uint) (int64, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	pred := query.Predicate{}.
		And(query.Where("name = ?", name)).
		AndIf(excludeID(excludingID))

	var count int64
	if err := pred.Apply(tx.Model(&models.Category{})).Count(&count).Error; err != nil {
		return 0, dataErr("count categories by name", err)
	}
	return count, nil
}

func excludeID[T any](id *T) (query.Condition, bool) {
	if id == nil {
		return query.Condition{}, false
	}
	return query.Where("id <> ?", *id), true
}
