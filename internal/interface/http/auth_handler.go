package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Me GET /api/auth/me returns the actor or null.
func (h *AuthHandler) Me(c *gin.Context) {
	response.JSON(c, http.StatusOK, middleware.CurrentActor(c))
}

// Signup POST /api/auth/signup {name, username, email}
func (h *AuthHandler) Signup(c *gin.Context) {
	var req application.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.Logger, badRequest("Invalid request body", err))
		return
	}
	sess, err := h.Svc.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.JSON(c, http.StatusCreated, sess.Actor)
}

// Login POST /api/auth/login {email}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.Logger, badRequest("Invalid request body", err))
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.JSON(c, http.StatusOK, sess.Actor)
}

// Logout POST /api/auth/logout always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}
