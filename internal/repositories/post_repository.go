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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostView(ctx context.Context, id uint) (*models.PostView, error)
	ListPosts(ctx context.Context, filter models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) (*models.Post, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	store
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB, timeout time.Duration) *PostgresPostRepository {
	return &PostgresPostRepository{store: newStore(db, timeout)}
}

func errPostNotFound() error { return apperror.NotFound("post not found") }

// postListing joins the category and author so a post can be displayed after its
// category or author row is gone.
var postListing = query.Listing{
	From: func(tx *gorm.DB) *gorm.DB {
		return tx.Table("posts").
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Joins("LEFT JOIN users ON users.id = posts.author_id")
	},
	Select: "posts.*, categories.name AS category_name, users.username AS author_username",
	Order:  "posts.id DESC",
}

// PostPredicate composes the feed filters in a fixed order: category, keyword, status.
func PostPredicate(f models.PostFilter) query.Predicate {
	return query.Predicate{}.
		AndIf(query.Equal("posts.category_id", f.CategoryID)).
		AndIf(query.Keyword(f.Keyword, "posts.title", "posts.description", "posts.content")).
		AndIf(query.Equal("posts.status", f.Status))
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	if err := tx.Create(post).Error; err != nil {
		if isForeignKeyViolation(err, constraintPostsCategoryFK) {
			return apperror.Validation("category_id", "category does not exist")
		}
		return dataErr("create post", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var post models.Post
	if err := tx.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound()
		}
		return nil, dataErr("get post", err)
	}
	return &post, nil
}

// GetPostView retrieves a post with its category and author names.
func (r *PostgresPostRepository) GetPostView(ctx context.Context, id uint) (*models.PostView, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var view models.PostView
	err := postListing.From(tx).
		Select(postListing.Select).
		Where("posts.id = ?", id).
		Take(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound()
		}
		return nil, dataErr("get post view", err)
	}
	return &view, nil
}

// ListPosts returns one page of posts, newest first.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return query.Paginate[models.PostView](ctx, r.db, postListing, PostPredicate(filter), page)
}

// UpdatePost overwrites the editable fields of a post.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	res := tx.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":       post.Title,
			"image":       post.Image,
			"category_id": post.CategoryID,
			"description": post.Description,
			"content":     post.Content,
			"status":      post.Status,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error, constraintPostsCategoryFK) {
			return apperror.Validation("category_id", "category does not exist")
		}
		return dataErr("update post", res.Error)
	}
	if res.RowsAffected == 0 {
		return errPostNotFound()
	}
	return nil
}

// DeletePost deletes a post by ID and returns the deleted row. Comments, likes and
// notifications of the post cascade.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var deleted models.Post
	res := tx.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&deleted)
	if res.Error != nil {
		return nil, dataErr("delete post", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errPostNotFound()
	}
	return &deleted, nil
}

// CountByCategory counts the posts referencing a category.
func (r *PostgresPostRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var count int64
	if err := tx.Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, dataErr("count posts by category", err)
	}
	return count, nil
}
