package repositories

import (
	"context"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, filter models.NotificationFilter, page query.PageRequest) (query.Page[models.NotificationView], error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint, userID string) (bool, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	store
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB, timeout time.Duration) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{store: newStore(db, timeout)}
}

var notificationListing = query.Listing{
	From: func(tx *gorm.DB) *gorm.DB {
		return tx.Table("notifications").
			Joins("LEFT JOIN users AS actors ON actors.id = notifications.actor_user_id").
			Joins("LEFT JOIN posts ON posts.id = notifications.post_id")
	},
	Select: "notifications.*, actors.username AS actor_username, actors.profile_pic AS actor_profile_pic, posts.title AS post_title",
	Order:  "notifications.created_at DESC, notifications.id DESC",
}

// NotificationPredicate scopes the inbox to its owner, then applies the read-state filter.
func NotificationPredicate(f models.NotificationFilter) query.Predicate {
	return query.Predicate{}.
		And(query.Where("notifications.user_id = ?", f.UserID)).
		AndIf(query.Equal("notifications.is_read", f.IsRead))
}

// CreateNotification inserts a single notification row.
func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	tx, cancel := r.session(ctx)
	defer cancel()

	if err := tx.Create(notification).Error; err != nil {
		return dataErr("create notification", err)
	}
	return nil
}

// ListNotifications returns one page of a user's inbox, newest first.
func (r *PostgresNotificationRepository) ListNotifications(ctx context.Context, filter models.NotificationFilter, page query.PageRequest) (query.Page[models.NotificationView], error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return query.Paginate[models.NotificationView](ctx, r.db, notificationListing, NotificationPredicate(filter), page)
}

// CountUnread counts the unread notifications of a user.
func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var count int64
	err := tx.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, dataErr("count unread notifications", err)
	}
	return count, nil
}

// MarkAsRead marks a notification as read only if userID owns it. Ownership is part of
// the UPDATE predicate, so there is no window between the check and the write.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint, userID string) (bool, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	res := tx.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, dataErr("mark notification read", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// MarkAllAsRead marks every unread notification of a user as read.
func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	res := tx.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, dataErr("mark all notifications read", res.Error)
	}
	return res.RowsAffected, nil
}
