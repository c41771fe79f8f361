package repositories

import (
	"context"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, postID uint, userID string) (models.LikeState, error)
	HasUserLikedPost(ctx context.Context, postID uint, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	store
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB, timeout time.Duration) *PostgresLikeRepository {
	return &PostgresLikeRepository{store: newStore(db, timeout)}
}

// ToggleLike flips the liked state of (post, user) and adjusts posts.likes_count in
// the same transaction.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, postID uint, userID string) (models.LikeState, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var state models.LikeState
	err := tx.Transaction(func(tx *gorm.DB) error {
		var err error
		state, err = toggleLike(tx, postID, userID)
		return err
	})
	if err != nil {
		switch {
		case isForeignKeyViolation(err, constraintLikesPostFK):
			return models.LikeState{}, errPostNotFound()
		case isUniqueViolation(err, constraintLikesPkey):
			return models.LikeState{}, apperror.Conflict("like is being updated concurrently")
		}
		return models.LikeState{}, dataErr("toggle like", err)
	}
	return state, nil
}

// toggleLike runs the toggle statements on tx, which the caller wraps in a transaction.
func toggleLike(tx *gorm.DB, postID uint, userID string) (models.LikeState, error) {
	var state models.LikeState
	res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return state, res.Error
	}

	delta := -1
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.Like{PostID: postID, UserID: userID}).Error; err != nil {
			return state, err
		}
		delta = 1
		state.Liked = true
	}

	var post models.Post
	upd := tx.Model(&post).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "likes_count"}}}).
		Where("id = ?", postID).
		Update("likes_count", gorm.Expr("GREATEST(likes_count + ?, 0)", delta))
	if upd.Error != nil {
		return state, upd.Error
	}
	if upd.RowsAffected == 0 {
		return state, errPostNotFound()
	}
	state.LikesCount = post.LikesCount
	return state, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID uint, userID string) (bool, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var count int64
	if err := tx.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, dataErr("check like", err)
	}
	return count > 0, nil
}
