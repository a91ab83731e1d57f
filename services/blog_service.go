package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
	repositories "github.com/cybersecclub/club-site-go/repositories"
)

// BlogService implements the blog workflow: creation, moderation,
// visibility, likes and comments. Caller identity and role are explicit
// parameters on every operation.
type BlogService struct {
	blogs    repositories.BlogRepository
	users    repositories.UserDirectory
	notifier ModerationNotifier
}

// NewBlogService creates a BlogService. notifier may be nil.
func NewBlogService(blogs repositories.BlogRepository, users repositories.UserDirectory, notifier ModerationNotifier) *BlogService {
	return &BlogService{blogs: blogs, users: users, notifier: notifier}
}

type CreateBlogInput struct {
	Title    string
	Content  string
	Category string
	ImageURL string
}

// Create stores a new blog in pending state and returns it with the
// author resolved.
func (s *BlogService) Create(ctx context.Context, authorID primitive.ObjectID, in CreateBlogInput) (*models.Blog, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, validationf("title and content are required")
	}
	if !models.ValidBlogCategory(in.Category) {
		return nil, validationf("invalid category %q", in.Category)
	}

	now := time.Now()
	blog := &models.Blog{
		ID:        primitive.NewObjectID(),
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Category:  in.Category,
		AuthorID:  authorID,
		Status:    models.BlogStatusPending,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		Image:     in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.blogs.Insert(ctx, blog); err != nil {
		return nil, err
	}
	return s.resolve(ctx, blog)
}

// ListApproved returns all approved blogs, newest first.
func (s *BlogService) ListApproved(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.ListByStatus(ctx, models.BlogStatusApproved)
	if err != nil {
		return nil, err
	}
	return s.resolveList(ctx, blogs)
}

// ListPending returns all pending blogs for the admin console.
func (s *BlogService) ListPending(ctx context.Context, callerRole string) ([]models.Blog, error) {
	if !models.IsAdmin(callerRole) {
		return nil, ErrUnauthorized
	}
	blogs, err := s.blogs.ListByStatus(ctx, models.BlogStatusPending)
	if err != nil {
		return nil, err
	}
	return s.resolveList(ctx, blogs)
}

// ListMine returns the caller's own blogs in every status.
func (s *BlogService) ListMine(ctx context.Context, callerID primitive.ObjectID) ([]models.Blog, error) {
	return s.blogs.ListByAuthor(ctx, callerID, "")
}

// ListByAuthor returns a user's approved blogs for their public profile.
func (s *BlogService) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Blog, error) {
	return s.blogs.ListByAuthor(ctx, author, models.BlogStatusApproved)
}

// GetApproved returns a single blog by id. Blogs that are not approved
// are reported as not found for every caller, so unapproved content
// cannot be probed through direct lookups.
func (s *BlogService) GetApproved(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if blog.Status != models.BlogStatusApproved {
		return nil, ErrNotFound
	}
	return s.resolve(ctx, blog)
}

// Moderate sets a blog's status to approved or rejected. Re-moderating
// an already moderated blog is an unconditional overwrite.
func (s *BlogService) Moderate(ctx context.Context, callerRole string, id primitive.ObjectID, target string) (*models.Blog, error) {
	if !models.IsAdmin(callerRole) {
		return nil, ErrUnauthorized
	}
	if !models.ValidModerationTarget(target) {
		return nil, validationf("invalid status %q", target)
	}

	blog, err := s.blogs.SetStatus(ctx, id, target)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	resolved, err := s.resolve(ctx, blog)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.BlogModerated(ctx, resolved)
	}
	return resolved, nil
}

// ToggleLike likes the blog on behalf of the caller, or removes the
// caller's like if one is already present. The like set stays
// duplicate-free because both halves are atomic set operations in the
// store.
func (s *BlogService) ToggleLike(ctx context.Context, callerID, id primitive.ObjectID) (*models.Blog, error) {
	removed, err := s.blogs.RemoveLike(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if !removed {
		if err := s.blogs.AddLike(ctx, id, callerID); err != nil {
			return nil, mapRepoErr(err)
		}
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return s.resolve(ctx, blog)
}

// AddComment appends a comment to the blog on behalf of the caller.
func (s *BlogService) AddComment(ctx context.Context, callerID, id primitive.ObjectID, text string) (*models.Blog, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationf("comment text is required")
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    callerID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	blog, err := s.blogs.PushComment(ctx, id, comment)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return s.resolve(ctx, blog)
}

// DeleteComment removes a comment. Only the comment's author or the
// blog's author may do so.
func (s *BlogService) DeleteComment(ctx context.Context, callerID, id, commentID primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	comment := blog.CommentByID(commentID)
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.UserID != callerID && blog.AuthorID != callerID {
		return nil, ErrForbidden
	}

	updated, err := s.blogs.PullComment(ctx, id, commentID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return s.resolve(ctx, updated)
}

// resolve attaches author and comment-author summaries to a single blog.
func (s *BlogService) resolve(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	ids := []primitive.ObjectID{blog.AuthorID}
	for _, c := range blog.Comments {
		ids = append(ids, c.UserID)
	}

	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	if a, ok := summaries[blog.AuthorID]; ok {
		blog.Author = &a
	}
	for i := range blog.Comments {
		if u, ok := summaries[blog.Comments[i].UserID]; ok {
			blog.Comments[i].User = &u
		}
	}
	return blog, nil
}

// resolveList attaches author summaries to a listing in one lookup.
func (s *BlogService) resolveList(ctx context.Context, blogs []models.Blog) ([]models.Blog, error) {
	ids := make([]primitive.ObjectID, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.AuthorID)
	}

	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range blogs {
		if a, ok := summaries[blogs[i].AuthorID]; ok {
			blogs[i].Author = &a
		}
	}
	return blogs, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
