package handlers

import (
	"context"
	"sort"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/identity"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
)

var testVerifier = identity.VerifierFunc(func(_ context.Context, token string) (identity.Identity, error) {
	switch token {
	case "admin-token":
		return identity.Identity{UserID: "admin"}, nil
	case "user-token":
		return identity.Identity{UserID: "u1"}, nil
	case "stranger-token":
		return identity.Identity{UserID: "stranger"}, nil
	}
	return identity.Identity{}, identity.ErrInvalidToken
})

type fakeProfiles struct {
	users map[string]*models.User
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{users: map[string]*models.User{
		"admin": {ID: "admin", Username: "admin", Role: models.RoleAdmin},
		"u1":    {ID: "u1", Username: "one", Role: models.RoleUser},
	}}
}

func (f *fakeProfiles) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user profile not found")
}

func (f *fakeProfiles) Register(_ context.Context, userID string, req models.RegisterUserRequest) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == req.Username {
			return nil, apperror.Conflict("username already exists")
		}
	}
	u := &models.User{ID: userID, Username: req.Username, Name: req.Name, Role: models.RoleUser}
	f.users[userID] = u
	return u, nil
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (*models.User, error) {
	return f.GetUserByID(ctx, userID)
}

func (f *fakeProfiles) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	u, err := f.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	return u, nil
}

type fakePostService struct {
	posts      map[uint]models.PostView
	lastFilter models.PostFilter
	lastPage   query.PageRequest
	created    []models.PostRequest
}

func newFakePostService() *fakePostService {
	return &fakePostService{posts: map[uint]models.PostView{
		1: {Post: models.Post{ID: 1, Title: "Hello", Content: "# Hello\n\n<script>x()</script>", Status: models.PostStatusPublish}},
	}}
}

func (f *fakePostService) List(_ context.Context, filter models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error) {
	f.lastFilter, f.lastPage = filter, page
	items := make([]models.PostView, 0, len(f.posts))
	for _, p := range f.posts {
		items = append(items, p)
	}
	return query.NewPage(items, 13, page), nil
}

func (f *fakePostService) Get(_ context.Context, id uint) (*models.PostView, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	return &p, nil
}

func (f *fakePostService) Create(_ context.Context, authorID string, req models.PostRequest) (*models.Post, error) {
	f.created = append(f.created, req)
	return &models.Post{ID: 2, Title: req.Title, AuthorID: &authorID, Status: models.PostStatusDraft}, nil
}

func (f *fakePostService) Update(_ context.Context, id uint, _ string, req models.PostRequest) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	p.Title = req.Title
	return &p.Post, nil
}

func (f *fakePostService) Delete(_ context.Context, id uint) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	delete(f.posts, id)
	return &p.Post, nil
}

type fakeCategoryService struct {
	categories map[uint]models.Category
	inUse      map[uint]bool
}

func newFakeCategoryService() *fakeCategoryService {
	return &fakeCategoryService{
		categories: map[uint]models.Category{1: {ID: 1, Name: "Travel"}, 2: {ID: 2, Name: "Food"}},
		inUse:      map[uint]bool{1: true},
	}
}

func (f *fakeCategoryService) List(context.Context, string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCategoryService) Get(_ context.Context, id uint) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperror.NotFound("category not found")
	}
	return &c, nil
}

func (f *fakeCategoryService) Create(_ context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return nil, apperror.Conflict("name already exists")
		}
	}
	c := models.Category{ID: uint(len(f.categories) + 1), Name: name}
	f.categories[c.ID] = c
	return &c, nil
}

func (f *fakeCategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	c, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	f.categories[id] = *c
	return c, nil
}

func (f *fakeCategoryService) Delete(ctx context.Context, id uint) (*models.Category, error) {
	c, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.inUse[id] {
		return nil, apperror.Conflict("category in use")
	}
	delete(f.categories, id)
	return c, nil
}

type fakeEngagement struct {
	liked    map[string]bool
	comments []models.CommentView
}

func (f *fakeEngagement) ListComments(_ context.Context, postID uint) ([]models.CommentView, error) {
	if postID != 1 {
		return nil, apperror.NotFound("post not found")
	}
	return f.comments, nil
}

func (f *fakeEngagement) AddComment(_ context.Context, postID uint, userID, text string) (*models.Comment, error) {
	if postID != 1 {
		return nil, apperror.NotFound("post not found")
	}
	c := models.Comment{ID: uint(len(f.comments) + 1), PostID: postID, UserID: userID, CommentText: text}
	f.comments = append(f.comments, models.CommentView{Comment: c})
	return &c, nil
}

func (f *fakeEngagement) ToggleLike(_ context.Context, postID uint, userID string) (models.LikeState, error) {
	if postID != 1 {
		return models.LikeState{}, apperror.NotFound("post not found")
	}
	if f.liked == nil {
		f.liked = map[string]bool{}
	}
	f.liked[userID] = !f.liked[userID]
	count := 0
	for _, v := range f.liked {
		if v {
			count++
		}
	}
	return models.LikeState{Liked: f.liked[userID], LikesCount: count}, nil
}

func (f *fakeEngagement) LikeStatus(_ context.Context, postID uint, userID string) (bool, error) {
	if postID != 1 {
		return false, apperror.NotFound("post not found")
	}
	return f.liked[userID], nil
}

type fakeNotificationRepo struct {
	rows       []models.Notification
	lastFilter models.NotificationFilter
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	n.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) ListNotifications(_ context.Context, filter models.NotificationFilter, page query.PageRequest) (query.Page[models.NotificationView], error) {
	f.lastFilter = filter
	var items []models.NotificationView
	for _, n := range f.rows {
		if n.UserID == filter.UserID && (filter.IsRead == nil || *filter.IsRead == n.IsRead) {
			items = append(items, models.NotificationView{Notification: n})
		}
	}
	return query.NewPage(items, int64(len(items)), page), nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.UserID == userID && !row.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id uint, userID string) (bool, error) {
	for i, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			f.rows[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i, row := range f.rows {
		if row.UserID == userID && !row.IsRead {
			f.rows[i].IsRead = true
			n++
		}
	}
	return n, nil
}
