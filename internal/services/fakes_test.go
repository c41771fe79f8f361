package services

import (
	"context"
	"sort"
	"sync"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/query"
)

type fakeCategories struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Category
}

func newFakeCategories(names ...string) *fakeCategories {
	f := &fakeCategories{rows: map[uint]models.Category{}}
	for _, n := range names {
		_ = f.CreateCategory(context.Background(), &models.Category{Name: n})
	}
	return f
}

func (f *fakeCategories) CreateCategory(_ context.Context, c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) GetCategoryByID(_ context.Context, id uint) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("category not found")
	}
	return &c, nil
}

func (f *fakeCategories) ListCategories(context.Context, string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Category, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCategories) UpdateCategory(_ context.Context, c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[c.ID]; !ok {
		return apperror.NotFound("category not found")
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) DeleteCategory(_ context.Context, id uint) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("category not found")
	}
	delete(f.rows, id)
	return &c, nil
}

func (f *fakeCategories) CountByName(_ context.Context, name string, excludingID *uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, c := range f.rows {
		if c.Name == name && (excludingID == nil || *excludingID != id) {
			n++
		}
	}
	return n, nil
}

type fakePosts struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Post
	getErr error
}

func newFakePosts(posts ...models.Post) *fakePosts {
	f := &fakePosts{rows: map[uint]models.Post{}}
	for _, p := range posts {
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakePosts) CreatePost(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePosts) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	return &p, nil
}

func (f *fakePosts) GetPostView(ctx context.Context, id uint) (*models.PostView, error) {
	p, err := f.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PostView{Post: *p}, nil
}

func (f *fakePosts) ListPosts(_ context.Context, _ models.PostFilter, page query.PageRequest) (query.Page[models.PostView], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.PostView, 0, len(f.rows))
	for _, p := range f.rows {
		items = append(items, models.PostView{Post: p})
	}
	return query.NewPage(items, int64(len(items)), page), nil
}

func (f *fakePosts) UpdatePost(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.ID]; !ok {
		return apperror.NotFound("post not found")
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePosts) DeletePost(_ context.Context, id uint) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	delete(f.rows, id)
	return &p, nil
}

func (f *fakePosts) CountByCategory(_ context.Context, categoryID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.rows {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type fakeComments struct {
	mu      sync.Mutex
	nextID  uint
	rows    []models.Comment
	listErr error
}

func (f *fakeComments) CreateComment(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeComments) ListCommentsByPost(_ context.Context, postID uint) ([]models.CommentView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CommentView{}
	for _, c := range f.rows {
		if c.PostID == postID {
			out = append(out, models.CommentView{Comment: c})
		}
	}
	return out, nil
}

func (f *fakeComments) ListCommenterIDs(_ context.Context, postID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	seen := map[string]bool{}
	var ids []string
	for _, c := range f.rows {
		if c.PostID == postID && !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeLikes struct {
	mu    sync.Mutex
	liked map[uint]map[string]bool
	posts *fakePosts
}

func newFakeLikes(posts *fakePosts) *fakeLikes {
	return &fakeLikes{liked: map[uint]map[string]bool{}, posts: posts}
}

func (f *fakeLikes) ToggleLike(ctx context.Context, postID uint, userID string) (models.LikeState, error) {
	if _, err := f.posts.GetPostByID(ctx, postID); err != nil {
		return models.LikeState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.liked[postID] == nil {
		f.liked[postID] = map[string]bool{}
	}
	if f.liked[postID][userID] {
		delete(f.liked[postID], userID)
	} else {
		f.liked[postID][userID] = true
	}
	return models.LikeState{Liked: f.liked[postID][userID], LikesCount: len(f.liked[postID])}, nil
}

func (f *fakeLikes) HasUserLikedPost(_ context.Context, postID uint, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liked[postID][userID], nil
}

type fakeUsers struct {
	mu      sync.Mutex
	rows    map[string]models.User
	listErr error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{rows: map[string]models.User{}}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.ID]; ok {
		return apperror.Conflict("profile already registered")
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("user profile not found")
	}
	return &u, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) CountByName(_ context.Context, username string, excludingID *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, u := range f.rows {
		if u.Username == username && (excludingID == nil || *excludingID != id) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) ListUserIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeNotifications struct {
	mu      sync.Mutex
	rows    []models.Notification
	failFor map[string]error
}

func (f *fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[n.UserID]; err != nil {
		return err
	}
	n.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotifications) recipients(typ models.NotificationType) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, n := range f.rows {
		if n.Type == typ {
			out = append(out, n.UserID)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
