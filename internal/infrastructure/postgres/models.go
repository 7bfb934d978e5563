package postgres

import (
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type userModel struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Username  string `gorm:"not null;uniqueIndex:users_username_key"`
	Email     string `gorm:"not null;uniqueIndex:users_email_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"`
	UserID    int64     `gorm:"not null;index"`
	User      userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Deleted   bool      `gorm:"not null"`
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postModel) TableName() string { return "posts" }

func toUserEntity(m *userModel) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPostEntity(m *postModel) entity.Post {
	return entity.Post{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		UserID:    m.UserID,
		Deleted:   m.Deleted,
		DeletedAt: m.DeletedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Author:    entity.Author{ID: m.User.ID, Name: m.User.Name, Username: m.User.Username},
	}
}

func toPostEntities(rows []postModel) []entity.Post {
	out := make([]entity.Post, 0, len(rows))
	for i := range rows {
		out = append(out, toPostEntity(&rows[i]))
	}
	return out
}
