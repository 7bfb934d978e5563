package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	m := userModel{Name: u.Name, Username: u.Username, Email: u.Email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err)
	}
	*u = *toUserEntity(&m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

func (r *UserRepository) ListAuthors(ctx context.Context) ([]entity.Author, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "username").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]entity.Author, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Author{ID: m.ID, Name: m.Name, Username: m.Username})
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
