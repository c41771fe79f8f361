package repositories

import (
	"context"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByPost(ctx context.Context, postID uint) ([]models.CommentView, error)
	ListCommenterIDs(ctx context.Context, postID uint) ([]string, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	store
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB, timeout time.Duration) *PostgresCommentRepository {
	return &PostgresCommentRepository{store: newStore(db, timeout)}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	if err := tx.Create(comment).Error; err != nil {
		if isForeignKeyViolation(err, constraintCommentsPostFK) {
			return errPostNotFound()
		}
		return dataErr("create comment", err)
	}
	return nil
}

// ListCommentsByPost returns the comments of a post in the order they were written.
func (r *PostgresCommentRepository) ListCommentsByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	comments := []models.CommentView{}
	err := tx.Table("comments").
		Select("comments.*, users.username, users.name, users.profile_pic").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC, comments.id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, dataErr("list comments", err)
	}
	return comments, nil
}

// ListCommenterIDs returns the distinct users who commented on a post.
func (r *PostgresCommentRepository) ListCommenterIDs(ctx context.Context, postID uint) ([]string, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var ids []string
	err := tx.Model(&models.Comment{}).
		Distinct("user_id").
		Where("post_id = ?", postID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, dataErr("list commenters", err)
	}
	return ids, nil
}
