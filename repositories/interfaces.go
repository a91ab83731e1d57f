package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("not found")

// BlogRepository is the persistence boundary for blog posts. Like and
// comment mutations are atomic set/array operations in the store, not
// read-modify-write cycles, so concurrent requests cannot produce
// duplicate likes or lost comments.
type BlogRepository interface {
	Insert(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	// ListByStatus returns blogs in the given status, newest first.
	ListByStatus(ctx context.Context, status string) ([]models.Blog, error)
	// ListByAuthor returns the author's blogs, newest first. An empty
	// status matches every status.
	ListByAuthor(ctx context.Context, author primitive.ObjectID, status string) ([]models.Blog, error)
	// SetStatus overwrites the moderation status and returns the updated
	// blog, or ErrNotFound.
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Blog, error)
	// AddLike adds the user to the like set ($addToSet). ErrNotFound if
	// the blog does not exist.
	AddLike(ctx context.Context, id, user primitive.ObjectID) error
	// RemoveLike pulls the user from the like set. It reports whether a
	// like was actually removed.
	RemoveLike(ctx context.Context, id, user primitive.ObjectID) (bool, error)
	// PushComment appends the comment and returns the updated blog.
	PushComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Blog, error)
	// PullComment removes the comment by id and returns the updated blog.
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Blog, error)
}

type EventRepository interface {
	Insert(ctx context.Context, event *models.Event) error
	// List returns every event sorted by date ascending.
	List(ctx context.Context) ([]models.Event, error)
	// ListByStatus returns events in the given status, newest first.
	ListByStatus(ctx context.Context, status string) ([]models.Event, error)
	// SetStatus overwrites the event status and returns the updated
	// event, or ErrNotFound.
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Event, error)
}

// UserDirectory resolves user ids to their public summaries; the blog
// workflow treats users as opaque identities and only needs this view.
type UserDirectory interface {
	Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
