package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// MetricsSource is the registry scraped by GET /metrics.
type MetricsSource struct {
	Registry *prometheus.Registry
}

type DebugModule struct {
	Health  *handlers.HealthHandler
	Metrics *MetricsSource
}

func NewDebugModule(health *handlers.HealthHandler, metrics *MetricsSource) *DebugModule {
	return &DebugModule{Health: health, Metrics: metrics}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.Metrics == nil {
		return
	}
	// scrape endpoint only reachable from private networks
	h := promhttp.HandlerFor(m.Metrics.Registry, promhttp.HandlerOpts{})
	rg.GET("/metrics", middleware.OnlyIf(middleware.AllowPrivateIP()), gin.WrapH(h))
}
