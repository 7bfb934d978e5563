package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// TrustProxies limits which peers may set the client address through
// X-Forwarded-For. An empty list trusts no proxy, so the socket address is
// used. With cloudflare set, CF-Connecting-IP is honoured; only enable it
// when the service is reachable through Cloudflare alone.
func TrustProxies(r *gin.Engine, proxies []string, cloudflare bool) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	if cloudflare {
		r.TrustedPlatform = gin.PlatformCloudflare
	}
	return nil
}

// RealIP stores the client IP under "real_ip" as resolved by gin against the
// engine's trusted proxies.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}

// ipFromCtx returns the resolved client IP, falling back to "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
