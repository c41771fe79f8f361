package models

import "time"

// Like marks that a user liked a post. The row's existence is the liked state.
type Like struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"primaryKey;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "post_likes" }

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}
