package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

// respondError writes the client view of err and logs everything except
// validation failures.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	r := response.FromError(c, err)
	if !apperror.ShouldLog(err) || logger == nil {
		return
	}
	entry := logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
		"status":     r.StatusCode,
		"code":       r.Code,
	}).WithError(err)
	if r.StatusCode >= http.StatusInternalServerError {
		entry.Error(r.Message)
		return
	}
	entry.Warn(r.Message)
}

func badRequest(msg string, bindErr error) error {
	return apperror.Validation(msg, validation.ToDetails(bindErr)...)
}
