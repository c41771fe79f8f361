package services

import (
	"context"
	"strings"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
	"go.uber.org/zap"
)

// EngagementService handles comments and likes and the notifications they trigger.
type EngagementService struct {
	posts    PostReader
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	notifier *Notifier
	logger   *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(posts PostReader, comments repositories.CommentRepository, likes repositories.LikeRepository, notifier *Notifier, logger *zap.Logger) *EngagementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngagementService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		notifier: notifier,
		logger:   logger.Named("engagement"),
	}
}

// ListComments returns the comments of an existing post, oldest first.
func (s *EngagementService) ListComments(ctx context.Context, postID uint) ([]models.CommentView, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListCommentsByPost(ctx, postID)
}

// AddComment stores a comment by userID, then notifies the post's author and the
// other commenters.
func (s *EngagementService) AddComment(ctx context.Context, postID uint, userID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("comment_text", "comment_text is required")
	}

	comment := &models.Comment{PostID: postID, UserID: userID, CommentText: text}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	res, err := s.notifier.NotifyComment(ctx, postID, userID, comment.ID)
	logFanOut(s.logger, models.NotificationComment, postID, res, err)
	return comment, nil
}

// ToggleLike likes or unlikes a post for userID. Only a new like notifies the author.
func (s *EngagementService) ToggleLike(ctx context.Context, postID uint, userID string) (models.LikeState, error) {
	state, err := s.likes.ToggleLike(ctx, postID, userID)
	if err != nil {
		return models.LikeState{}, err
	}
	if state.Liked {
		res, err := s.notifier.NotifyLike(ctx, postID, userID)
		logFanOut(s.logger, models.NotificationLike, postID, res, err)
	}
	return state, nil
}

// LikeStatus reports whether userID currently likes an existing post.
func (s *EngagementService) LikeStatus(ctx context.Context, postID uint, userID string) (bool, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return false, err
	}
	return s.likes.HasUserLikedPost(ctx, postID, userID)
}
