package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

type AuthService struct {
	Users    *UserService
	Sessions SessionIssuer
	Events   EventPublisher
	Logger   *logrus.Logger
}

func NewAuthService(users *UserService, sessions SessionIssuer, events EventPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Events: events, Logger: logger}
}

// Session is an issued token together with the actor it identifies.
type Session struct {
	Actor     entity.Actor
	Token     string
	ExpiresAt time.Time
}

// Login authenticates by email match alone.
func (s *AuthService) Login(ctx context.Context, email string) (*Session, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperror.Validation("Please enter a valid email address")
	}
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("No account found with that email")
	}
	return s.issue(entity.Actor(*u))
}

// Signup creates the user and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, in CreateUserInput) (*Session, error) {
	u, err := s.Users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	sess, err := s.issue(entity.Actor(*u))
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, helpers.EventUserSignedUp, UserSignedUp{
		ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email, OccurredAt: time.Now().UTC(),
	})
	return sess, nil
}

func (s *AuthService) issue(a entity.Actor) (*Session, error) {
	token, exp, err := s.Sessions.Issue(a.ID, a.Name, a.Username, a.Email)
	if err != nil {
		return nil, apperror.Internal("Failed to create session").Wrap(err)
	}
	return &Session{Actor: a, Token: token, ExpiresAt: exp}, nil
}

// ActorFromClaims converts verified session claims into an actor.
func ActorFromClaims(c *helpers.SessionClaims) *entity.Actor {
	if c == nil {
		return nil
	}
	return &entity.Actor{ID: c.UserID, Name: c.Name, Username: c.Username, Email: c.Email}
}
