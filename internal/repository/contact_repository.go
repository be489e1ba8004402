package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/database"
	"socialfeed/internal/models"
)

type ContactRepository struct {
	Col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{Col: db.Collection(database.ColContacts)}
}

// EnsureEdge creates the {UserID, ContactID} edge if it does not exist and
// bumps updated_at either way. It reports whether the edge was created.
func (r *ContactRepository) EnsureEdge(ctx context.Context, c *models.Contact, now time.Time) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"user_id": c.UserID, "contact_id": c.ContactID},
		bson.M{
			"$setOnInsert": bson.M{
				"first_name": c.FirstName,
				"last_name":  c.LastName,
				"image_url":  c.ImageURL,
				"created_at": now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		// Two first messages racing on the unique index: the other one won.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, translate(err, "upsert contact")
	}
	return res.UpsertedCount == 1, nil
}

// Touch bumps updated_at of an existing {userID, contactID} edge. A missing
// edge is left missing.
func (r *ContactRepository) Touch(ctx context.Context, userID, contactID string, now time.Time) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"user_id": userID, "contact_id": contactID},
		bson.M{"$set": bson.M{"updated_at": now}},
	)
	return translate(err, "touch contact")
}

// ListByUser returns the contacts owned by userID, most recently active first.
func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]models.Contact, error) {
	cur, err := r.Col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, translate(err, "find contacts")
	}
	defer cur.Close(ctx)

	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode contacts")
	}
	return out, nil
}
