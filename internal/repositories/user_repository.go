package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	CountByName(ctx context.Context, username string, excludingID *string) (int64, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	store
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{store: newStore(db, timeout)}
}

func errUserNotFound() error { return apperror.NotFound("user profile not found") }

// CreateUser creates the profile row of an identity.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := tx.Create(user).Error; err != nil {
		switch {
		case isUniqueViolation(err, constraintUsernameKey):
			return apperror.Conflict("username already exists")
		case isUniqueViolation(err, constraintUsersPkey):
			return apperror.Conflict("profile already registered")
		}
		return dataErr("create user", err)
	}
	return nil
}

// GetUserByID retrieves a user by the identity provider's user id
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var user models.User
	if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound()
		}
		return nil, dataErr("get user", err)
	}
	return &user, nil
}

// UpdateUser writes the editable profile fields. Role is never changed here.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	res := tx.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":    user.Username,
			"name":        user.Name,
			"profile_pic": user.ProfilePic,
			"bio":         user.Bio,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error, constraintUsernameKey) {
			return apperror.Conflict("username already exists")
		}
		return dataErr("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return errUserNotFound()
	}
	return nil
}

// CountByName counts users holding username exactly, ignoring excludingID when set.
func (r *PostgresUserRepository) CountByName(ctx context.Context, username string, excludingID *string) (int64, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	pred := query.Predicate{}.
		And(query.Where("username = ?", username)).
		AndIf(excludeID(excludingID))

	var count int64
	if err := pred.Apply(tx.Model(&models.User{})).Count(&count).Error; err != nil {
		return 0, dataErr("count users by username", err)
	}
	return count, nil
}

// ListUserIDs returns every profile id in a stable order.
func (r *PostgresUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var ids []string
	if err := tx.Model(&models.User{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, dataErr("list user ids", err)
	}
	return ids, nil
}
