package models

import "time"

type NotificationType string

const (
	NotificationLike         NotificationType = "like"
	NotificationComment      NotificationType = "comment"
	NotificationCommentReply NotificationType = "comment_reply"
	NotificationNewArticle   NotificationType = "new_article"
)

// Notification tells UserID that ActorUserID did something on PostID.
// Recipient and actor are never the same user.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      string           `json:"user_id" gorm:"type:text;not null;index"`
	PostID      uint             `json:"post_id" gorm:"not null;index"`
	Type        NotificationType `json:"type" gorm:"type:text;not null"`
	ActorUserID *string          `json:"actor_user_id" gorm:"type:text"`
	CommentID   *uint            `json:"comment_id"`
	IsRead      bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationView is a notification with actor and post details for the inbox.
type NotificationView struct {
	Notification
	ActorUsername   *string `json:"actor_username"`
	ActorProfilePic *string `json:"actor_profile_pic"`
	PostTitle       *string `json:"post_title"`
}

// NotificationFilter carries the optional filters of the notification listing.
type NotificationFilter struct {
	UserID string
	IsRead *bool
}
