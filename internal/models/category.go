package models

import "time"

// Category groups posts. Name is unique with exact, case-sensitive matching.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:text;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
