package postgres

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// withAuthor loads only the public author columns.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "username")
	})
}

func filtered(f entity.PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			db = db.Where("user_id = ?", *f.UserID)
		}
		if !f.IncludeDeleted {
			db = db.Where("deleted = ?", false)
		}
		return db
	}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	m := postModel{Title: p.Title, Body: p.Body, UserID: p.UserID}
	db := r.db.WithContext(ctx)
	if err := db.Omit("User").Create(&m).Error; err != nil {
		return translateError(err)
	}
	if err := db.Select("id", "name", "username").First(&m.User, m.UserID).Error; err != nil {
		return translateError(err)
	}
	*p = toPostEntity(&m)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	p := toPostEntity(&m)
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, f entity.PostFilter) ([]entity.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&postModel{}).Scopes(filtered(f)).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	var rows []postModel
	q := r.db.WithContext(ctx).Scopes(filtered(f), withAuthor).Order("id DESC").Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return toPostEntities(rows), total, nil
}

func (r *PostRepository) GetLiveByIDs(ctx context.Context, ids []int64) ([]entity.Post, error) {
	if len(ids) == 0 {
		return []entity.Post{}, nil
	}
	var rows []postModel
	err := r.db.WithContext(ctx).Scopes(withAuthor).
		Where("id IN ? AND deleted = ?", ids, false).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	byID := make(map[int64]postModel, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	out := make([]entity.Post, 0, len(rows))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, toPostEntity(&m))
		}
	}
	return out, nil
}

func (r *PostRepository) Search(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	pattern := "%" + escapeLike(q) + "%"
	var rows []postModel
	err := r.db.WithContext(ctx).Scopes(withAuthor).
		Where("deleted = ?", false).
		Where("title ILIKE ? OR body ILIKE ?", pattern, pattern).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toPostEntities(rows), nil
}

func (r *PostRepository) CountLiveByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&postModel{}).
		Where("user_id = ? AND deleted = ?", userID, false).
		Count(&n).Error
	return n, translateError(err)
}

func (r *PostRepository) MarkDeleted(ctx context.Context, id, ownerID int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&postModel{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, ownerID, false).
		Updates(map[string]any{"deleted": true, "deleted_at": at})
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

var _ repository.PostRepository = (*PostRepository)(nil)
