package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DefaultQueryTimeout bounds a single store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// PostgreSQL SQLSTATE codes the repositories classify.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Constraint names declared in migrations/00001_init.sql.
const (
	constraintUsersPkey       = "users_pkey"
	constraintUsernameKey     = "users_username_key"
	constraintCategoryNameKey = "categories_name_key"
	constraintPostsCategoryFK = "posts_category_id_fkey"
	constraintCommentsPostFK  = "comments_post_id_fkey"
	constraintLikesPostFK     = "post_likes_post_id_fkey"
	constraintLikesPkey       = "post_likes_pkey"
)

// store is embedded by every Postgres repository.
type store struct {
	db      *gorm.DB
	timeout time.Duration
}

func newStore(db *gorm.DB, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return store{db: db, timeout: timeout}
}

// session binds db to ctx with the per-call query timeout.
func (s store) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// pgError extracts the PostgreSQL error from err's chain.
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgForeignKeyViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

// dataErr wraps err as a DataAccessError unless it is already classified.
func dataErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != apperror.KindUnknown {
		return err
	}
	return apperror.DataAccess(op, err)
}
