package services

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"socialfeed/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository/memstore"
)

var nopLog = zerolog.New(io.Discard)

// stepClock returns a clock that advances one second per call.
func stepClock() Clock {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func ident(id, first string) *models.Identity {
	return &models.Identity{ID: id, FirstName: first, ImageURL: "https://img.example.com/" + id + ".png"}
}

type postFixture struct {
	svc      *PostService
	posts    *memstore.Posts
	comments *memstore.Comments
}

func newPostFixture(policy config.CommentDeletePolicy) postFixture {
	f := postFixture{posts: memstore.NewPosts(), comments: memstore.NewComments()}
	f.svc = NewPostService(f.posts, f.comments, policy, nopLog)
	f.svc.now = stepClock()
	return f
}
