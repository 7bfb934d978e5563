package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	authors, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, authors)
}

// Profile GET /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.Logger, apperror.Validation("Invalid user ID"))
		return
	}
	p, err := h.Svc.Profile(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if p == nil {
		respondError(c, h.Logger, apperror.NotFound("User not found"))
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
