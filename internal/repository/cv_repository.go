package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/database"
	"socialfeed/internal/models"
)

type CVRepository struct {
	Col *mongo.Collection
}

func NewCVRepository(db *mongo.Database) *CVRepository {
	return &CVRepository{Col: db.Collection(database.ColCVs)}
}

// Insert stores cv. A second CV for the same user fails with ErrDuplicate
// because of the unique index on user_id.
func (r *CVRepository) Insert(ctx context.Context, cv *models.CV) error {
	if cv.ID.IsZero() {
		cv.ID = bson.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, cv)
	return translate(err, "insert cv")
}

func (r *CVRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.CV, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CVRepository) FindByUser(ctx context.Context, userID string) (*models.CV, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *CVRepository) findOne(ctx context.Context, filter bson.M) (*models.CV, error) {
	var cv models.CV
	if err := r.Col.FindOne(ctx, filter).Decode(&cv); err != nil {
		return nil, translate(err, "find cv")
	}
	return &cv, nil
}

// SaveSections writes every section of s over the stored CV.
func (r *CVRepository) SaveSections(ctx context.Context, id bson.ObjectID, s models.CVSections, now time.Time) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"education":       s.Education,
			"work_experience": s.WorkExperience,
			"services":        s.Services,
			"career_break":    s.CareerBreak,
			"skills":          s.Skills,
			"updated_at":      now,
		}},
	)
	if err != nil {
		return translate(err, "update cv")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
