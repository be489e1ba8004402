package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/database"
)

// EnsureIndexes creates the indexes the repositories rely on. The two unique
// indexes back the "one CV per user" and "one contact edge per pair" rules.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		database.ColPosts: {
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("created_at_desc"),
			},
		},
		database.ColComments: {
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("created_at_desc"),
			},
		},
		database.ColMessages: {
			{
				Keys: bson.D{
					{Key: "sender_id", Value: 1},
					{Key: "receiver_id", Value: 1},
					{Key: "created_at", Value: 1},
				},
				Options: options.Index().SetName("conversation"),
			},
		},
		database.ColContacts: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "contact_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_user_contact"),
			},
		},
		database.ColCVs: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_user"),
			},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", col)
		}
	}
	return nil
}
