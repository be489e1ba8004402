package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/database"
	"socialfeed/internal/models"
)

type MessageRepository struct {
	Col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{Col: db.Collection(database.ColMessages)}
}

func conversationFilter(a, b string) bson.M {
	return bson.M{"$or": []bson.M{
		{"sender_id": a, "receiver_id": b},
		{"sender_id": b, "receiver_id": a},
	}}
}

func (r *MessageRepository) Insert(ctx context.Context, m *models.Message) error {
	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, m)
	return translate(err, "insert message")
}

// Conversation returns every message between a and b in chronological order.
func (r *MessageRepository) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	cur, err := r.Col.Find(ctx,
		conversationFilter(a, b),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, translate(err, "find messages")
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode messages")
	}
	return out, nil
}

// Latest returns the most recent message between a and b, or ErrNotFound.
func (r *MessageRepository) Latest(ctx context.Context, a, b string) (*models.Message, error) {
	var m models.Message
	err := r.Col.FindOne(ctx,
		conversationFilter(a, b),
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	).Decode(&m)
	if err != nil {
		return nil, translate(err, "find latest message")
	}
	return &m, nil
}
