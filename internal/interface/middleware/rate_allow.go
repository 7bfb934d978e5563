package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

// AllowFunc returns true for requests that bypass a limit or restriction.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP matches loopback and RFC 1918 / RFC 4193 client addresses.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// OnlyIf rejects requests for which allow is false with 403.
func OnlyIf(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c) {
			response.Abort(c, http.StatusForbidden, "Forbidden", "FORBIDDEN")
			return
		}
		c.Next()
	}
}
