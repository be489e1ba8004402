package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalid is returned for cursors that cannot be decoded.
var ErrInvalid = errors.New("invalid cursor")

// Position marks the last item of a page ordered by (createdAt desc, id desc).
type Position struct {
	CreatedAt time.Time
	ID        bson.ObjectID
}

type wire struct {
	CreatedAt int64  `json:"createdAt"`
	ID        string `json:"id"`
}

func Encode(p Position) string {
	b, _ := json.Marshal(wire{
		CreatedAt: p.CreatedAt.UnixMilli(),
		ID:        p.ID.Hex(),
	})
	return base64.RawURLEncoding.EncodeToString(b)
}

func Decode(s string) (Position, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Position{}, errors.Wrap(ErrInvalid, err.Error())
	}

	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Position{}, errors.Wrap(ErrInvalid, err.Error())
	}

	oid, err := bson.ObjectIDFromHex(w.ID)
	if err != nil {
		return Position{}, errors.Wrap(ErrInvalid, err.Error())
	}

	return Position{CreatedAt: time.UnixMilli(w.CreatedAt).UTC(), ID: oid}, nil
}

// Filter returns the Mongo filter selecting items strictly after p.
func (p Position) Filter() bson.M {
	return bson.M{"$or": []bson.M{
		{"created_at": bson.M{"$lt": p.CreatedAt}},
		{"created_at": p.CreatedAt, "_id": bson.M{"$lt": p.ID}},
	}}
}

// After reports whether an item at (createdAt, id) comes after p in
// (createdAt desc, id desc) order.
func (p Position) After(createdAt time.Time, id bson.ObjectID) bool {
	if createdAt.Before(p.CreatedAt) {
		return true
	}
	return createdAt.Equal(p.CreatedAt) && id.Hex() < p.ID.Hex()
}
