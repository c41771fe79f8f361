package models

import (
	"strings"
	"time"
)

// Role is the authorization level of a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the profile row owned by this service. ID is the identity provider's stable user id.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	Username   string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	Name       string    `json:"name"`
	Role       Role      `json:"role" gorm:"type:text;not null;default:user"`
	ProfilePic string    `json:"profile_pic"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsAdmin reports whether the user may manage posts and categories.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RegisterUserRequest creates the profile row for an already authenticated identity.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// Normalize trims the request before validation.
func (r *RegisterUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
}

// UpdateProfileRequest changes profile fields. Empty fields are left untouched.
type UpdateProfileRequest struct {
	Username   string `json:"username,omitempty" validate:"omitempty,min=3,max=40"`
	Name       string `json:"name,omitempty" validate:"omitempty,max=100"`
	ProfilePic string `json:"profile_pic,omitempty" validate:"omitempty,url"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// Normalize trims the request before validation.
func (r *UpdateProfileRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	r.ProfilePic = strings.TrimSpace(r.ProfilePic)
}
