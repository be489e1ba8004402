// Package memstore holds in-memory stores with the same ordering and
// uniqueness behaviour as the Mongo repositories. Tests run services and
// handlers on them, and feedctl seed --dry-run uses them in place of MongoDB.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/cursor"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

func newestFirst(aAt time.Time, aID bson.ObjectID, bAt time.Time, bID bson.ObjectID) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID.Hex() > bID.Hex()
}

type Posts struct {
	mu    sync.Mutex
	items map[bson.ObjectID]models.Post

	// FailPush makes PushComment fail with this error when set.
	FailPush error
}

func NewPosts() *Posts {
	return &Posts{items: map[bson.ObjectID]models.Post{}}
}

func clonePost(p models.Post) models.Post {
	p.Comments = append([]bson.ObjectID{}, p.Comments...)
	p.Likes = append([]string{}, p.Likes...)
	return p
}

func (s *Posts) Insert(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	s.items[p.ID] = clonePost(*p)
	return nil
}

func (s *Posts) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (s *Posts) sorted() []models.Post {
	out := make([]models.Post, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out
}

func (s *Posts) ListNewestFirst(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(), nil
}

func (s *Posts) ListPage(_ context.Context, pos *cursor.Position, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Post{}
	for _, p := range s.sorted() {
		if pos != nil && !pos.After(p.CreatedAt, p.ID) {
			continue
		}
		out = append(out, p)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *Posts) AddLike(_ context.Context, id bson.ObjectID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok || p.LikedBy(userID) {
		return false, nil
	}
	p.Likes = append(p.Likes, userID)
	s.items[id] = p
	return true, nil
}

func (s *Posts) RemoveLike(_ context.Context, id bson.ObjectID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	likes := p.Likes[:0:0]
	for _, l := range p.Likes {
		if l != userID {
			likes = append(likes, l)
		}
	}
	p.Likes = likes
	s.items[id] = p
	return true, nil
}

func (s *Posts) PushComment(_ context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPush != nil {
		return false, s.FailPush
	}
	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	p.Comments = append(p.Comments, commentID)
	p.UpdatedAt = now
	s.items[id] = p
	return true, nil
}

func (s *Posts) PullComment(_ context.Context, id, commentID bson.ObjectID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	ids := p.Comments[:0:0]
	for _, c := range p.Comments {
		if c != commentID {
			ids = append(ids, c)
		}
	}
	p.Comments = ids
	p.UpdatedAt = now
	s.items[id] = p
	return true, nil
}

func (s *Posts) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type Comments struct {
	mu    sync.Mutex
	items map[bson.ObjectID]models.Comment
}

func NewComments() *Comments {
	return &Comments{items: map[bson.ObjectID]models.Comment{}}
}

func (s *Comments) Insert(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	s.items[c.ID] = *c
	return nil
}

func (s *Comments) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Comments) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Comment{}
	for _, id := range ids {
		if c, ok := s.items[id]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (s *Comments) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *Comments) DeleteMany(_ context.Context, ids []bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := s.items[id]; ok {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many comments are stored.
func (s *Comments) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type Messages struct {
	mu    sync.Mutex
	items []models.Message
}

func NewMessages() *Messages { return &Messages{} }

func (s *Messages) Insert(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	s.items = append(s.items, *m)
	return nil
}

func between(m models.Message, a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

func (s *Messages) Conversation(_ context.Context, a, b string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.items {
		if between(m, a, b) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (s *Messages) Latest(ctx context.Context, a, b string) (*models.Message, error) {
	conv, _ := s.Conversation(ctx, a, b)
	if len(conv) == 0 {
		return nil, repository.ErrNotFound
	}
	return &conv[len(conv)-1], nil
}

type Contacts struct {
	mu    sync.Mutex
	items []models.Contact

	// FailEnsure makes EnsureEdge fail with this error when set.
	FailEnsure error
}

func NewContacts() *Contacts { return &Contacts{} }

func (s *Contacts) EnsureEdge(_ context.Context, c *models.Contact, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailEnsure != nil {
		return false, s.FailEnsure
	}
	for i := range s.items {
		if s.items[i].UserID == c.UserID && s.items[i].ContactID == c.ContactID {
			s.items[i].UpdatedAt = now
			return false, nil
		}
	}
	edge := *c
	edge.ID = bson.NewObjectID()
	edge.CreatedAt = now
	edge.UpdatedAt = now
	s.items = append(s.items, edge)
	return true, nil
}

func (s *Contacts) Touch(_ context.Context, userID, contactID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ContactID == contactID {
			s.items[i].UpdatedAt = now
		}
	}
	return nil
}

func (s *Contacts) ListByUser(_ context.Context, userID string) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Contact{}
	for _, c := range s.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].UpdatedAt, out[i].ID, out[j].UpdatedAt, out[j].ID)
	})
	return out, nil
}

type CVs struct {
	mu    sync.Mutex
	items map[bson.ObjectID]models.CV
}

func NewCVs() *CVs {
	return &CVs{items: map[bson.ObjectID]models.CV{}}
}

func (s *CVs) Insert(_ context.Context, cv *models.CV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.UserID == cv.UserID {
			return repository.ErrDuplicate
		}
	}
	if cv.ID.IsZero() {
		cv.ID = bson.NewObjectID()
	}
	s.items[cv.ID] = *cv
	return nil
}

func (s *CVs) FindByID(_ context.Context, id bson.ObjectID) (*models.CV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cv, nil
}

func (s *CVs) FindByUser(_ context.Context, userID string) (*models.CV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cv := range s.items {
		if cv.UserID == userID {
			return &cv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *CVs) SaveSections(_ context.Context, id bson.ObjectID, sections models.CVSections, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	cv.CVSections = sections
	cv.UpdatedAt = now
	s.items[id] = cv
	return nil
}
