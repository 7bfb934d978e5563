package router

import (
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/container"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/router/modules"
)

type services struct {
	Users *application.UserService
	Posts *application.PostService
	Auth  *application.AuthService
}

func buildServices(c *container.Container) services {
	users := application.NewUserService(c.Users, c.Posts, c.Logger)
	posts := application.NewPostService(c.Posts, c.Index, c.Events, c.Logger)
	auth := application.NewAuthService(users, c.Sessions, c.Events, c.Logger)
	return services{Users: users, Posts: posts, Auth: auth}
}

// InitModules builds services and handlers from c and registers every feature
// module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := buildServices(c)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger)))
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Auth, c.Cookies, c.Logger),
		c.Redis,
		c.Config.AuthRateLimit,
	))
	r.Add(modules.NewPostModule(
		handlers.NewPostHandler(svc.Posts, c.Logger),
		c.Redis,
		c.Config.PostRateLimit,
	))

	var metrics *modules.MetricsSource
	if c.Config.MetricsEnabled && c.Metrics != nil {
		metrics = &modules.MetricsSource{Registry: c.Metrics.Registry}
	}
	r.AddRoot(modules.NewDebugModule(handlers.NewHealthHandler(c.Ping), metrics))
}
