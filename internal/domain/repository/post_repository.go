package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
// Every returned post carries its author projection.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	// GetByID also returns soft-deleted posts.
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	// List returns the page selected by f, newest first, and the total
	// count under the same filter.
	List(ctx context.Context, f entity.PostFilter) ([]entity.Post, int64, error)
	// GetLiveByIDs returns the non-deleted posts among ids, in the order of ids.
	GetLiveByIDs(ctx context.Context, ids []int64) ([]entity.Post, error)
	// Search matches title or body case-insensitively, newest first, excluding deleted.
	Search(ctx context.Context, q string, limit int) ([]entity.Post, error)
	CountLiveByUser(ctx context.Context, userID int64) (int64, error)
	// MarkDeleted flips the post to deleted only if it is owned by ownerID
	// and not yet deleted. It reports whether a row changed.
	MarkDeleted(ctx context.Context, id, ownerID int64, at time.Time) (bool, error)
}
