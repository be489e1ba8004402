package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID        bson.ObjectID   `json:"id"                 bson:"_id,omitempty"`
	User      User            `json:"user"               bson:"user"`
	Text      string          `json:"text"               bson:"text"`
	ImageURL  string          `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Comments  []bson.ObjectID `json:"comments"           bson:"comments"`
	Likes     []string        `json:"likes"              bson:"likes"`
	CreatedAt time.Time       `json:"createdAt"          bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt"          bson:"updated_at"`
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// PostView is a post with its comment references resolved, newest first.
type PostView struct {
	ID        bson.ObjectID `json:"id"`
	User      User          `json:"user"`
	Text      string        `json:"text"`
	ImageURL  string        `json:"imageUrl,omitempty"`
	Comments  []Comment     `json:"comments"`
	Likes     []string      `json:"likes"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewPostView(p Post, comments []Comment) PostView {
	if comments == nil {
		comments = []Comment{}
	}
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return PostView{
		ID:        p.ID,
		User:      p.User,
		Text:      p.Text,
		ImageURL:  p.ImageURL,
		Comments:  comments,
		Likes:     likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
