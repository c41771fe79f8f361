package services

import (
	"context"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
	"go.uber.org/zap"
)

// PostService manages posts and announces newly published ones.
type PostService struct {
	posts    repositories.PostRepository
	notifier *Notifier
	logger   *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, notifier *Notifier, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, notifier: notifier, logger: logger.Named("posts")}
}

func postStatus(statusID int) (models.PostStatus, error) {
	status, ok := models.PostStatusFromID(statusID)
	if !ok {
		return "", apperror.Validation("status_id", "status_id must be 1 (draft) or 2 (publish)")
	}
	return status, nil
}

// List returns one page of posts matching filter, newest first.
func (s *PostService) List(ctx context.Context, filter models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error) {
	return s.posts.ListPosts(ctx, filter, page)
}

// Get returns a post with its category and author names.
func (s *PostService) Get(ctx context.Context, id uint) (*models.PostView, error) {
	return s.posts.GetPostView(ctx, id)
}

// Create stores a post written by authorID. Publishing it notifies every other user.
func (s *PostService) Create(ctx context.Context, authorID string, req models.PostRequest) (*models.Post, error) {
	status, err := postStatus(req.StatusID)
	if err != nil {
		return nil, err
	}

	categoryID := req.CategoryID
	post := &models.Post{
		Title:       req.Title,
		Image:       req.Image,
		CategoryID:  &categoryID,
		Description: req.Description,
		Content:     req.Content,
		Status:      status,
		Date:        time.Now(),
	}
	if authorID != "" {
		post.AuthorID = &authorID
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	if post.IsPublished() {
		s.announce(ctx, post, authorID)
	}
	return post, nil
}

// Update replaces the editable fields of a post. A draft that becomes published is
// announced like a new post.
func (s *PostService) Update(ctx context.Context, id uint, editorID string, req models.PostRequest) (*models.Post, error) {
	status, err := postStatus(req.StatusID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasPublished := post.IsPublished()

	categoryID := req.CategoryID
	post.Title = req.Title
	post.Image = req.Image
	post.CategoryID = &categoryID
	post.Description = req.Description
	post.Content = req.Content
	post.Status = status

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	if !wasPublished && post.IsPublished() {
		s.announce(ctx, post, editorID)
	}
	return post, nil
}

// Delete removes a post and returns the removed row.
func (s *PostService) Delete(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.DeletePost(ctx, id)
}

func (s *PostService) announce(ctx context.Context, post *models.Post, actorID string) {
	res, err := s.notifier.NotifyNewArticle(ctx, post.ID, actorID)
	logFanOut(s.logger, models.NotificationNewArticle, post.ID, res, err)
}

// logFanOut records the outcome of a fan-out the request does not wait on for errors.
func logFanOut(logger *zap.Logger, typ models.NotificationType, postID uint, res FanOutResult, err error) {
	if err != nil {
		logger.Error("notification fan-out failed",
			zap.String("type", string(typ)),
			zap.Uint("post_id", postID),
			zap.Error(err))
		return
	}
	if len(res.Failures) > 0 {
		logger.Warn("notification fan-out partially delivered",
			zap.String("type", string(typ)),
			zap.Uint("post_id", postID),
			zap.Int("created", res.Created),
			zap.Int("failed", len(res.Failures)))
		return
	}
	logger.Debug("notification fan-out done",
		zap.String("type", string(typ)),
		zap.Uint("post_id", postID),
		zap.Int("created", res.Created))
}
