package controllers

import (
	"context"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/cybersecclub/club-site-go/config"
	middleware "github.com/cybersecclub/club-site-go/middleware"
	models "github.com/cybersecclub/club-site-go/models"
	repositories "github.com/cybersecclub/club-site-go/repositories"
	services "github.com/cybersecclub/club-site-go/services"
	utils "github.com/cybersecclub/club-site-go/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

type memBlogRepo struct {
	blogs map[primitive.ObjectID]*models.Blog
}

func (r *memBlogRepo) Insert(_ context.Context, blog *models.Blog) error {
	cp := *blog
	r.blogs[blog.ID] = &cp
	return nil
}

func (r *memBlogRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *blog
	return &cp, nil
}

func (r *memBlogRepo) ListByStatus(_ context.Context, status string) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range r.blogs {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memBlogRepo) ListByAuthor(_ context.Context, author primitive.ObjectID, status string) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range r.blogs {
		if b.AuthorID == author && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memBlogRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	blog.Status = status
	blog.UpdatedAt = time.Now()
	cp := *blog
	return &cp, nil
}

func (r *memBlogRepo) AddLike(_ context.Context, id, user primitive.ObjectID) error {
	blog, ok := r.blogs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if !blog.LikedBy(user) {
		blog.Likes = append(blog.Likes, user)
	}
	return nil
}

func (r *memBlogRepo) RemoveLike(_ context.Context, id, user primitive.ObjectID) (bool, error) {
	blog, ok := r.blogs[id]
	if !ok || !blog.LikedBy(user) {
		return false, nil
	}
	kept := blog.Likes[:0]
	for _, l := range blog.Likes {
		if l != user {
			kept = append(kept, l)
		}
	}
	blog.Likes = kept
	return true, nil
}

func (r *memBlogRepo) PushComment(_ context.Context, id primitive.ObjectID, comment models.Comment) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	blog.Comments = append(blog.Comments, comment)
	cp := *blog
	return &cp, nil
}

func (r *memBlogRepo) PullComment(_ context.Context, id, commentID primitive.ObjectID) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	kept := blog.Comments[:0]
	for _, c := range blog.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	blog.Comments = kept
	cp := *blog
	return &cp, nil
}

type memEventRepo struct {
	events map[primitive.ObjectID]*models.Event
}

func (r *memEventRepo) Insert(_ context.Context, event *models.Event) error {
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *memEventRepo) List(_ context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memEventRepo) ListByStatus(_ context.Context, status string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memEventRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	event.Status = status
	event.UpdatedAt = time.Now()
	cp := *event
	return &cp, nil
}

type memUserDirectory struct {
	users map[primitive.ObjectID]models.UserSummary
}

func (d *memUserDirectory) Summaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := map[primitive.ObjectID]models.UserSummary{}
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d *memUserDirectory) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

type testEnv struct {
	router *gin.Engine
	blogs  *memBlogRepo
	events *memEventRepo
	users  *memUserDirectory
	cfg    *config.Config
}

// newTestEnv wires the blog and event routes over in-memory stores, with
// the real auth middleware in front.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		blogs:  &memBlogRepo{blogs: map[primitive.ObjectID]*models.Blog{}},
		events: &memEventRepo{events: map[primitive.ObjectID]*models.Event{}},
		users:  &memUserDirectory{users: map[primitive.ObjectID]models.UserSummary{}},
		cfg:    &config.Config{JWTSecret: testSecret},
	}

	blogSvc := services.NewBlogService(env.blogs, env.users, nil)
	eventSvc := services.NewEventService(env.events)

	auth := middleware.AuthMiddleware(env.cfg)
	admin := middleware.AdminOnly()

	r := gin.New()
	api := r.Group("/api")

	blogs := api.Group("/blogs")
	blogs.GET("", ListBlogs(blogSvc))
	blogs.GET("/user/:id", ListUserBlogs(blogSvc))
	blogs.GET("/user", auth, ListMyBlogs(blogSvc))
	blogs.POST("", auth, CreateBlog(blogSvc))
	blogs.POST("/:id/like", auth, LikeBlog(blogSvc))
	blogs.POST("/:id/comment", auth, CommentBlog(blogSvc))
	blogs.DELETE("/:id/comment/:commentId", auth, DeleteComment(blogSvc))
	blogs.GET("/pending", auth, admin, ListPendingBlogs(blogSvc))
	blogs.PUT("/moderate/:id", auth, admin, ModerateBlog(blogSvc))
	blogs.GET("/:id", GetBlog(blogSvc))

	events := api.Group("/events")
	events.GET("", ListEvents(eventSvc))
	events.POST("", auth, admin, CreateEvent(eventSvc))
	events.GET("/pending", auth, admin, ListPendingEvents(eventSvc))
	events.PUT("/moderate/:id", auth, admin, ModerateEvent(eventSvc))

	env.router = r
	return env
}

// addUser registers a user in the directory and returns it with a signed
// token.
func (env *testEnv) addUser(t *testing.T, name, role string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: strings.ToLower(name) + "@club.test",
		Role:  role,
	}
	env.users.users[user.ID] = *user.Summary()

	token, err := utils.GenerateAccessToken(user, testSecret)
	require.NoError(t, err)
	return user, token
}

// seedBlog inserts a blog directly into the store.
func (env *testEnv) seedBlog(author primitive.ObjectID, status string) *models.Blog {
	now := time.Now()
	blog := &models.Blog{
		ID:        primitive.NewObjectID(),
		Title:     "Phishing 101",
		Content:   "Do not click that link.",
		Category:  "Awareness",
		AuthorID:  author,
		Status:    status,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	env.blogs.blogs[blog.ID] = blog
	return blog
}

func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
