package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

// PingFunc checks a dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	Store PingFunc
}

func NewHealthHandler(store PingFunc) *HealthHandler {
	return &HealthHandler{Store: store}
}

// Health GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Store(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "store unavailable", "UNAVAILABLE")
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
