package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// PostModule wires post routes.
// Public: GET /api/posts, GET /api/posts/recent, GET /api/posts/search
// Protected: POST /api/posts, DELETE /api/posts/:id
type PostModule struct {
	Handler   *handlers.PostHandler
	Redis     *redis.Client
	PerMinute int
}

func NewPostModule(h *handlers.PostHandler, rdb *redis.Client, perMinute int) *PostModule {
	return &PostModule{Handler: h, Redis: rdb, PerMinute: perMinute}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/recent", m.Handler.Recent)
	rg.GET("/posts/search", m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.RequireActor())
	{
		createLimiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByActor(), nil)
		auth.POST("/posts", createLimiter, m.Handler.Create)
		auth.DELETE("/posts/:id", m.Handler.Delete)
	}
}
