package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft   PostStatus = "draft"
	PostStatusPublish PostStatus = "publish"
)

// status_id values used by the admin UI
var postStatusByID = map[int]PostStatus{
	1: PostStatusDraft,
	2: PostStatusPublish,
}

// PostStatusFromID maps the admin UI's status_id to a PostStatus.
func PostStatusFromID(id int) (PostStatus, bool) {
	s, ok := postStatusByID[id]
	return s, ok
}

// ParsePostStatus validates a status name.
func ParsePostStatus(s string) (PostStatus, bool) {
	switch PostStatus(s) {
	case PostStatusDraft, PostStatusPublish:
		return PostStatus(s), true
	}
	return "", false
}

// Post is a blog article.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Image       string     `json:"image"`
	CategoryID  *uint      `json:"category_id" gorm:"index"`
	AuthorID    *string    `json:"author_id" gorm:"type:text;index"`
	Description string     `json:"description"`
	Content     string     `json:"content" gorm:"type:text"`
	Status      PostStatus `json:"status" gorm:"type:text;not null;default:draft"`
	Date        time.Time  `json:"date"`
	LikesCount  int        `json:"likes_count" gorm:"not null;default:0"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// IsPublished reports whether the post is visible on the storefront.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublish
}

// PostView is a post joined with its category and author for display.
type PostView struct {
	Post
	CategoryName   *string `json:"category"`
	AuthorUsername *string `json:"author_username"`
}

// PostRequest is the body of post create and update.
type PostRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Image       string `json:"image" validate:"required"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	Description string `json:"description" validate:"required,max=500"`
	Content     string `json:"content" validate:"required"`
	StatusID    int    `json:"status_id" validate:"required,oneof=1 2"`
}

// PostFilter carries the optional filters of the post listing.
type PostFilter struct {
	CategoryID *uint
	Keyword    string
	Status     *PostStatus
}
