package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/database"
	"socialfeed/internal/cursor"
	"socialfeed/internal/models"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

type PostRepository struct {
	Col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{Col: db.Collection(database.ColPosts)}
}

func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, p)
	return translate(err, "insert post")
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err, "find post")
	}
	return &p, nil
}

// ListNewestFirst returns every post, newest first.
func (r *PostRepository) ListNewestFirst(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

// ListPage returns up to limit posts strictly after pos (or from the top when
// pos is nil), newest first.
func (r *PostRepository) ListPage(ctx context.Context, pos *cursor.Position, limit int64) ([]models.Post, error) {
	filter := bson.M{}
	if pos != nil {
		filter = pos.Filter()
	}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(limit))
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.Post, error) {
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "find posts")
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, translate(err, "decode posts")
	}
	return posts, nil
}

// AddLike adds userID to the like set only if it is not there yet. It reports
// false when no post matched, which is either a missing post or a repeat like.
func (r *PostRepository) AddLike(ctx context.Context, id bson.ObjectID, userID string) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, translate(err, "like post")
	}
	return res.MatchedCount == 1, nil
}

// RemoveLike pulls userID from the like set. It reports whether the post exists.
func (r *PostRepository) RemoveLike(ctx context.Context, id bson.ObjectID, userID string) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, translate(err, "unlike post")
	}
	return res.MatchedCount == 1, nil
}

func (r *PostRepository) PushComment(ctx context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"comments": commentID},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return false, translate(err, "push comment")
	}
	return res.MatchedCount == 1, nil
}

func (r *PostRepository) PullComment(ctx context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"comments": commentID},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return false, translate(err, "pull comment")
	}
	return res.MatchedCount == 1, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, translate(err, "delete post")
	}
	return res.DeletedCount == 1, nil
}
