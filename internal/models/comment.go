package models

import "time"

// Comment is a reader's comment on a post.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post_id" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"type:text;not null;index"`
	CommentText string    `json:"comment_text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// CommentView is a comment with its author's public profile fields.
type CommentView struct {
	Comment
	Username   *string `json:"username"`
	Name       *string `json:"name"`
	ProfilePic *string `json:"profile_pic"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	CommentText string `json:"comment_text" validate:"required,min=1,max=1000"`
}
