package services

import (
	"context"
	"strings"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
)

const msgUsernameTaken = "username already exists"

// ProfileService owns the profile rows of authenticated identities.
type ProfileService struct {
	users repositories.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(users repositories.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Register creates the profile of userID. New profiles always get the user role.
func (s *ProfileService) Register(ctx context.Context, userID string, req models.RegisterUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if err := AssertUniqueName[string](ctx, s.users, username, nil, msgUsernameTaken); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       userID,
		Username: username,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// Update applies the non-empty fields of req to the profile of userID.
func (s *ProfileService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(req.Username); username != "" && username != user.Username {
		if err := AssertUniqueName[string](ctx, s.users, username, &userID, msgUsernameTaken); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.ProfilePic != "" {
		user.ProfilePic = req.ProfilePic
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
