package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/database"
	"socialfeed/internal/models"
)

type CommentRepository struct {
	Col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{Col: db.Collection(database.ColComments)}
}

func (r *CommentRepository) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, c)
	return translate(err, "insert comment")
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err, "find comment")
	}
	return &c, nil
}

// FindByIDs resolves comment references, newest first. Dangling references
// are skipped.
func (r *CommentRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Comment, error) {
	out := []models.Comment{}
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.Col.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(newestFirst),
	)
	if err != nil {
		return nil, translate(err, "find comments")
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode comments")
	}
	return out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err, "delete comment")
}

func (r *CommentRepository) DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.Col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, translate(err, "delete comments")
	}
	return res.DeletedCount, nil
}
