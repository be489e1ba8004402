package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/config"
	"socialfeed/dto"
	"socialfeed/internal/apperr"
	"socialfeed/internal/cursor"
	"socialfeed/internal/logger"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

const (
	defaultPostAuthorName    = "John Doe"
	defaultCommentAuthorName = "unknown"
)

var (
	errPostNotFound    = apperr.NotFound("post not found")
	errCommentNotFound = apperr.NotFound("comment not found")
	errUnauthenticated = apperr.Auth("unauthorized user")
)

type PostService struct {
	posts    PostStore
	comments CommentStore
	policy   config.CommentDeletePolicy
	log      zerolog.Logger
	now      Clock
}

func NewPostService(posts PostStore, comments CommentStore, policy config.CommentDeletePolicy, log zerolog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		policy:   policy,
		log:      log,
		now:      systemClock,
	}
}

type CreatePostInput struct {
	Text     string
	ImageURL string
}

// Create stores a new post authored by caller with empty likes and comments.
func (s *PostService) Create(ctx context.Context, caller *models.Identity, in CreatePostInput) (*models.Post, error) {
	if caller == nil || caller.ID == "" {
		return nil, errUnauthenticated
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperr.Validation("You must provide a text input")
	}

	now := s.now()
	post := &models.Post{
		User:      caller.AsUser(defaultPostAuthorName),
		Text:      text,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Comments:  []bson.ObjectID{},
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, apperr.Persistence("failed to create post", err)
	}

	metrics.Event(metrics.PostCreated)
	logger.FromContext(ctx, s.log).Debug().Str("post_id", post.ID.Hex()).Msg("post created")
	return post, nil
}

func (s *PostService) load(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errPostNotFound
	case err != nil:
		return nil, apperr.Persistence("failed to fetch post", err)
	}
	return post, nil
}

// LikePost adds userID to the post's like set. A second like by the same
// user is a conflict, not a no-op.
func (s *PostService) LikePost(ctx context.Context, postID bson.ObjectID, userID string) error {
	if userID == "" {
		return errUnauthenticated
	}
	added, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return apperr.Persistence("Failed to like post", err)
	}
	if added {
		metrics.Event(metrics.PostLiked)
		return nil
	}
	if _, err := s.load(ctx, postID); err != nil {
		return err
	}
	return apperr.Conflict("User has already liked this post")
}

// UnlikePost removes userID from the like set; absent membership is fine.
func (s *PostService) UnlikePost(ctx context.Context, postID bson.ObjectID, userID string) error {
	if userID == "" {
		return errUnauthenticated
	}
	found, err := s.posts.RemoveLike(ctx, postID, userID)
	if err != nil {
		return apperr.Persistence("Failed to unlike post", err)
	}
	if !found {
		return errPostNotFound
	}
	return nil
}

// Remove deletes a post owned by callerID. Referenced comments are deleted
// too under the cascade policy and left in place otherwise.
func (s *PostService) Remove(ctx context.Context, postID bson.ObjectID, callerID string) error {
	if callerID == "" {
		return errUnauthenticated
	}
	post, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if post.User.UserID != callerID {
		return apperr.Auth("only the author can remove this post")
	}

	deleted, err := s.posts.Delete(ctx, postID)
	if err != nil {
		return apperr.Persistence("Failed to remove post", err)
	}
	if !deleted {
		return errPostNotFound
	}
	metrics.Event(metrics.PostRemoved)

	log := logger.FromContext(ctx, s.log)
	if s.policy == config.PolicyCascade && len(post.Comments) > 0 {
		n, err := s.comments.DeleteMany(ctx, post.Comments)
		if err != nil {
			// The post is gone already; leftover comments are only orphans.
			log.Error().Err(err).Str("post_id", postID.Hex()).Msg("cascade comment delete failed")
			return nil
		}
		log.Debug().Int64("comments", n).Str("post_id", postID.Hex()).Msg("comments cascaded")
	}
	return nil
}

// CommentOnPost stores a comment and appends its reference to the post. If
// the reference cannot be appended the comment is deleted again, so a failed
// call leaves no orphan behind.
func (s *PostService) CommentOnPost(ctx context.Context, postID bson.ObjectID, caller *models.Identity, text string) (*models.Comment, error) {
	if caller == nil || caller.ID == "" {
		return nil, errUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text required")
	}
	if _, err := s.load(ctx, postID); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		User:      caller.AsUser(defaultCommentAuthorName),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, apperr.Persistence("Failed to comment on post", err)
	}

	pushed, err := s.posts.PushComment(ctx, postID, comment.ID, now)
	if err == nil && pushed {
		metrics.Event(metrics.CommentCreated)
		return comment, nil
	}

	if derr := s.comments.Delete(ctx, comment.ID); derr != nil {
		logger.FromContext(ctx, s.log).Error().Err(derr).
			Str("comment_id", comment.ID.Hex()).
			Msg("failed to roll back comment")
	}
	if err != nil {
		return nil, apperr.Persistence("Failed to comment on post", err)
	}
	return nil, errPostNotFound
}

// RemoveComment drops a comment reference from a post. The post author and the
// comment author may do this.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID bson.ObjectID, callerID string) error {
	if callerID == "" {
		return errUnauthenticated
	}
	post, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if !containsID(post.Comments, commentID) {
		return errCommentNotFound
	}

	allowed := post.User.UserID == callerID
	if !allowed {
		comment, err := s.comments.FindByID(ctx, commentID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return apperr.Persistence("Failed to remove comment", err)
		default:
			allowed = comment.User.UserID == callerID
		}
	}
	if !allowed {
		return apperr.Auth("not allowed to remove this comment")
	}

	pulled, err := s.posts.PullComment(ctx, postID, commentID, s.now())
	if err != nil {
		return apperr.Persistence("Failed to remove comment", err)
	}
	if !pulled {
		return errPostNotFound
	}

	if s.policy == config.PolicyCascade {
		if err := s.comments.Delete(ctx, commentID); err != nil {
			logger.FromContext(ctx, s.log).Error().Err(err).
				Str("comment_id", commentID.Hex()).
				Msg("cascade comment delete failed")
		}
	}
	return nil
}

// GetAllComments resolves the post's comments, newest first.
func (s *PostService) GetAllComments(ctx context.Context, postID bson.ObjectID) ([]models.Comment, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.FindByIDs(ctx, post.Comments)
	if err != nil {
		return nil, apperr.Persistence("Failed to get all comments", err)
	}
	return comments, nil
}

func (s *PostService) GetPost(ctx context.Context, postID bson.ObjectID) (models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return models.PostView{}, err
	}
	views, err := s.populate(ctx, []models.Post{*post})
	if err != nil {
		return models.PostView{}, err
	}
	return views[0], nil
}

// GetAllPosts returns every post newest first, each with its comments
// resolved newest first.
func (s *PostService) GetAllPosts(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.ListNewestFirst(ctx)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch posts", err)
	}
	return s.populate(ctx, posts)
}

// ListPostsPage is the paginated form of GetAllPosts.
func (s *PostService) ListPostsPage(ctx context.Context, cursorStr string, limit int64) (dto.PageResp[models.PostView], error) {
	var page dto.PageResp[models.PostView]

	if limit <= 0 {
		limit = config.DefaultLimitPosts
	}
	if limit > config.MaxLimitPosts {
		limit = config.MaxLimitPosts
	}

	var pos *cursor.Position
	if cursorStr != "" {
		p, err := cursor.Decode(cursorStr)
		if err != nil {
			return page, apperr.Validation("invalid cursor")
		}
		pos = &p
	}

	posts, err := s.posts.ListPage(ctx, pos, limit+1)
	if err != nil {
		return page, apperr.Persistence("Failed to fetch posts", err)
	}
	if int64(len(posts)) > limit {
		posts = posts[:limit]
		last := posts[len(posts)-1]
		next := cursor.Encode(cursor.Position{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
		page.HasMore = true
	}

	page.Items, err = s.populate(ctx, posts)
	return page, err
}

// populate resolves comment references for posts with one batched query.
func (s *PostService) populate(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	owner := make(map[bson.ObjectID]int)
	var ids []bson.ObjectID
	for i, p := range posts {
		for _, cid := range p.Comments {
			if _, seen := owner[cid]; !seen {
				owner[cid] = i
				ids = append(ids, cid)
			}
		}
	}

	comments, err := s.comments.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch posts", err)
	}

	grouped := make([][]models.Comment, len(posts))
	for _, c := range comments {
		i := owner[c.ID]
		grouped[i] = append(grouped[i], c)
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.NewPostView(p, grouped[i])
	}
	return views, nil
}

func containsID(ids []bson.ObjectID, id bson.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
