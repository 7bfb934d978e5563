package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// Container carries the constructed infrastructure that router modules wire
// into services and handlers. It is built once in main and passed down.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users repository.UserRepository
	Posts repository.PostRepository
	// Ping checks the backing store; nil means always healthy.
	Ping func(ctx context.Context) error

	// Optional integrations, nil when not configured.
	Redis  *redis.Client
	Events application.EventPublisher
	Index  application.PostIndexer

	Sessions *helpers.SessionManager
	Cookies  *helpers.CookieManager
	Metrics  *middleware.Metrics
}

var _ application.PostIndexer = (*search.PostIndex)(nil)

// New fills in the session and cookie managers from cfg. Storage and optional
// integrations are attached by the caller.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config:   cfg,
		Logger:   logger,
		Sessions: helpers.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}
