package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// SessionIssuer signs session tokens for an actor.
type SessionIssuer interface {
	Issue(userID int64, name, username, email string) (string, time.Time, error)
}

// EventPublisher delivers domain events. Implementations must be safe for
// concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event string, body any) error
}

// PostIndexer is an optional full-text index over live posts.
type PostIndexer interface {
	IndexPost(ctx context.Context, p entity.Post) error
	RemovePost(ctx context.Context, id int64) error
	SearchPostIDs(ctx context.Context, q string, size int) ([]int64, error)
}

var (
	_ SessionIssuer  = (*helpers.SessionManager)(nil)
	_ EventPublisher = (*helpers.RabbitPublisher)(nil)
)

// UserSignedUp is the payload of helpers.EventUserSignedUp.
type UserSignedUp struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PostChanged is the payload of helpers.EventPostCreated and helpers.EventPostDeleted.
type PostChanged struct {
	PostID     int64     `json:"postId"`
	UserID     int64     `json:"userId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}

const publishTimeout = 2 * time.Second

// publish is best effort; a broker outage never fails the request.
func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, event string, body any) {
	if pub == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := pub.Publish(c, event, body); err != nil {
		helpers.LogWarn(logger, "publish event failed", err, logrus.Fields{"event": event})
	}
}
