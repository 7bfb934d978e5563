package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const CtxActorKey = "actor"

// Session reads the session cookie and, when it verifies, stores the actor
// in the context. Missing, expired and forged tokens all leave the request
// anonymous.
func Session(sessions *helpers.SessionManager, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a := application.ActorFromClaims(sessions.Verify(cookies.Session(c))); a != nil {
			c.Set(CtxActorKey, a)
		}
		c.Next()
	}
}

// CurrentActor returns the verified actor or nil.
func CurrentActor(c *gin.Context) *entity.Actor {
	v, ok := c.Get(CtxActorKey)
	if !ok {
		return nil
	}
	a, _ := v.(*entity.Actor)
	return a
}
