package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type listPostsQuery struct {
	UserID *int64 `form:"userId" binding:"omitempty,gte=1"`
	Page   int    `form:"page,default=1" binding:"gte=1"`
	Limit  int    `form:"limit,default=10" binding:"gte=1,lte=100"`
}

type limitQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type searchQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type createPostResponse struct {
	Message string       `json:"message"`
	Post    *entity.Post `json:"post"`
}

// List GET /api/posts?userId=&page=&limit=
func (h *PostHandler) List(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.Logger, badRequest("Invalid pagination parameters", err))
		return
	}
	page, err := h.Svc.List(c.Request.Context(), application.ListPostsInput{
		UserID: q.UserID,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Recent GET /api/posts/recent?limit=
func (h *PostHandler) Recent(c *gin.Context) {
	var q limitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.Logger, badRequest("Invalid limit", err))
		return
	}
	posts, err := h.Svc.Recent(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"posts": posts})
}

// Search GET /api/posts/search?q=&limit=
func (h *PostHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.Logger, badRequest("Invalid search parameters", err))
		return
	}
	posts, err := h.Svc.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"posts": posts})
}

// Create POST /api/posts {title, body} (auth required)
func (h *PostHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	var req application.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.Logger, badRequest("Invalid request body", err))
		return
	}
	post, err := h.Svc.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, createPostResponse{Message: "Post created successfully", Post: post})
}

// Delete DELETE /api/posts/:id (auth required, owner only)
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.Logger, apperror.Validation("Invalid post ID"))
		return
	}
	actor := middleware.CurrentActor(c)
	if err := h.Svc.Delete(c.Request.Context(), id, actor.ID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Post deleted successfully")
}
