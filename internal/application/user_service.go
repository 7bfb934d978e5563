package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

type UserService struct {
	Repo   repo.UserRepository
	Posts  repo.PostRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, posts repo.PostRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: users, Posts: posts, Logger: logger}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FindByEmail returns nil without error when no user has that email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByEmail(ctx, validation.NormalizeEmail(email))
	return s.lookup(u, err)
}

// FindByID returns nil without error when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id int64) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	return s.lookup(u, err)
}

func (s *UserService) lookup(u *entity.User, err error) (*entity.PublicUser, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch user").Wrap(err)
	}
	pub := u.Public()
	return &pub, nil
}

// Create validates, normalizes and stores a new user. Uniqueness is left
// to the store so there is no check-then-insert window.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.PublicUser, error) {
	res := validation.ValidateUserInput(validation.UserInput{Name: &in.Name, Username: &in.Username, Email: &in.Email})
	if !res.IsValid {
		return nil, apperror.Validation(res.Errors[0], res.Errors...)
	}
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Username: strings.TrimSpace(in.Username),
		Email:    validation.NormalizeEmail(in.Email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		var uv *repo.UniqueViolationError
		if errors.As(err, &uv) {
			return nil, conflictFor(uv).Wrap(err)
		}
		return nil, apperror.Internal("Failed to create user").Wrap(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	pub := u.Public()
	return &pub, nil
}

func conflictFor(uv *repo.UniqueViolationError) *apperror.Error {
	switch uv.Field {
	case "email":
		return apperror.Conflict("An account with this email already exists")
	case "username":
		return apperror.Conflict("This username is already taken")
	default:
		return apperror.Conflict("Email or username is already in use")
	}
}

// ListAll returns every author for the filter control, ordered by name.
func (s *UserService) ListAll(ctx context.Context) ([]entity.Author, error) {
	authors, err := s.Repo.ListAuthors(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch users").Wrap(err)
	}
	return authors, nil
}

// Profile returns nil without error when the user does not exist.
func (s *UserService) Profile(ctx context.Context, id int64) (*entity.Profile, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	n, err := s.Posts.CountLiveByUser(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch user").Wrap(err)
	}
	return &entity.Profile{PublicUser: *u, PostCount: n}, nil
}
