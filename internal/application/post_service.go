package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

const (
	DefaultPage        = 1
	DefaultPageSize    = 10
	MaxPageSize        = 100
	DefaultRecentLimit = 6
)

type PostService struct {
	Repo   repo.PostRepository
	Index  PostIndexer
	Events EventPublisher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewPostService(posts repo.PostRepository, index PostIndexer, events EventPublisher, logger *logrus.Logger) *PostService {
	return &PostService{Repo: posts, Index: index, Events: events, Logger: logger, Now: time.Now}
}

type ListPostsInput struct {
	UserID         *int64
	IncludeDeleted bool
	Page           int
	Limit          int
}

type CreatePostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// List pages through posts newest first. Zero Page/Limit take the defaults.
func (s *PostService) List(ctx context.Context, in ListPostsInput) (*entity.PostPage, error) {
	page, limit := in.Page, in.Limit
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if page < 1 || limit < 1 || limit > MaxPageSize {
		return nil, apperror.Validation("Invalid pagination parameters")
	}
	// pages past the addressable range are empty rather than wrapping
	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}
	posts, total, err := s.Repo.List(ctx, entity.PostFilter{
		UserID:         in.UserID,
		IncludeDeleted: in.IncludeDeleted,
		Offset:         skip,
		Limit:          limit,
	})
	if err != nil {
		return nil, apperror.Internal("Failed to fetch posts").Wrap(err)
	}
	return &entity.PostPage{
		Posts:   posts,
		Total:   total,
		HasMore: int64(len(posts)) < total-int64(skip),
		Page:    page,
		Limit:   limit,
	}, nil
}

// Recent returns the newest live posts for the landing view.
func (s *PostService) Recent(ctx context.Context, limit int) ([]entity.Post, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, apperror.Validation("Invalid limit")
	}
	posts, _, err := s.Repo.List(ctx, entity.PostFilter{Limit: limit})
	if err != nil {
		return nil, apperror.Internal("Failed to fetch posts").Wrap(err)
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, actorID int64, in CreatePostInput) (*entity.Post, error) {
	res := validation.ValidatePostInput(validation.PostInput{Title: &in.Title, Body: &in.Body})
	if !res.IsValid {
		return nil, apperror.Validation(res.Errors[0], res.Errors...)
	}
	p := &entity.Post{
		Title:  strings.TrimSpace(in.Title),
		Body:   strings.TrimSpace(in.Body),
		UserID: actorID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrReferenceMissing) {
			return nil, apperror.NotFound("Author not found").Wrap(err)
		}
		return nil, apperror.Internal("Failed to create post").Wrap(err)
	}
	s.Logger.WithFields(logrus.Fields{"post_id": p.ID, "user_id": actorID}).Info("post created")

	if s.Index != nil {
		if err := s.Index.IndexPost(ctx, *p); err != nil {
			helpers.LogWarn(s.Logger, "index post failed", err, logrus.Fields{"post_id": p.ID})
		}
	}
	publish(ctx, s.Events, s.Logger, helpers.EventPostCreated, PostChanged{
		PostID: p.ID, UserID: p.UserID, Title: p.Title, OccurredAt: p.CreatedAt,
	})
	return p, nil
}

// Delete soft-deletes a post owned by actorID. Existence is checked before
// the deleted flag, and both before ownership.
func (s *PostService) Delete(ctx context.Context, postID, actorID int64) error {
	p, err := s.Repo.GetByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound("Post not found")
	}
	if err != nil {
		return apperror.Internal("Failed to delete post").Wrap(err)
	}
	if p.Deleted {
		return apperror.Gone("Post has already been deleted")
	}
	if p.UserID != actorID {
		return apperror.Forbidden("You can only delete your own posts")
	}

	now := s.Now()
	changed, err := s.Repo.MarkDeleted(ctx, postID, actorID, now)
	if err != nil {
		return apperror.Internal("Failed to delete post").Wrap(err)
	}
	if !changed {
		// a concurrent delete won the conditional update
		return apperror.Gone("Post has already been deleted")
	}
	s.Logger.WithFields(logrus.Fields{"post_id": postID, "user_id": actorID}).Info("post deleted")

	if s.Index != nil {
		if err := s.Index.RemovePost(ctx, postID); err != nil {
			helpers.LogWarn(s.Logger, "remove post from index failed", err, logrus.Fields{"post_id": postID})
		}
	}
	publish(ctx, s.Events, s.Logger, helpers.EventPostDeleted, PostChanged{
		PostID: postID, UserID: actorID, Title: p.Title, OccurredAt: now,
	})
	return nil
}

// Search finds live posts by title or body. The index is preferred when
// configured; the store is the fallback.
func (s *PostService) Search(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("Search query is required")
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, apperror.Validation("Invalid limit")
	}
	if s.Index != nil {
		ids, err := s.Index.SearchPostIDs(ctx, q, limit)
		if err == nil {
			posts, err := s.Repo.GetLiveByIDs(ctx, ids)
			if err != nil {
				return nil, apperror.Internal("Failed to search posts").Wrap(err)
			}
			return posts, nil
		}
		helpers.LogWarn(s.Logger, "index search failed, using store", err, logrus.Fields{"q": q})
	}
	posts, err := s.Repo.Search(ctx, q, limit)
	if err != nil {
		return nil, apperror.Internal("Failed to search posts").Wrap(err)
	}
	return posts, nil
}
