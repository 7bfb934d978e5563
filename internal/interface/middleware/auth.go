package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

// RequireActor rejects anonymous requests. It must run after Session.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c) == nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", apperror.KindAuthentication.Code())
			return
		}
		c.Next()
	}
}
