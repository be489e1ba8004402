package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/cursor"
	"socialfeed/internal/models"
)

// The store interfaces are satisfied by the Mongo repositories and by the
// in-memory implementations used in tests.

type PostStore interface {
	Insert(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	ListNewestFirst(ctx context.Context) ([]models.Post, error)
	ListPage(ctx context.Context, pos *cursor.Position, limit int64) ([]models.Post, error)
	AddLike(ctx context.Context, id bson.ObjectID, userID string) (bool, error)
	RemoveLike(ctx context.Context, id bson.ObjectID, userID string) (bool, error)
	PushComment(ctx context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error)
	PullComment(ctx context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Comment, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error)
}

type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) error
	Conversation(ctx context.Context, a, b string) ([]models.Message, error)
	Latest(ctx context.Context, a, b string) (*models.Message, error)
}

type ContactStore interface {
	EnsureEdge(ctx context.Context, c *models.Contact, now time.Time) (bool, error)
	Touch(ctx context.Context, userID, contactID string, now time.Time) error
	ListByUser(ctx context.Context, userID string) ([]models.Contact, error)
}

type CVStore interface {
	Insert(ctx context.Context, cv *models.CV) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.CV, error)
	FindByUser(ctx context.Context, userID string) (*models.CV, error)
	SaveSections(ctx context.Context, id bson.ObjectID, s models.CVSections, now time.Time) error
}

// Clock is swapped in tests to get deterministic timestamps.
type Clock func() time.Time

// systemClock matches the millisecond precision of stored dates.
func systemClock() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
