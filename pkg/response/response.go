package response

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// MessageBody is returned by operations that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Message: msg})
}

// Error writes a plain error body.
func Error(c *gin.Context, status int, msg, code string) {
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, status int, msg, code string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: code})
}

// FromError writes the translated form of err and returns it.
func FromError(c *gin.Context, err error) apperror.Resolved {
	r := apperror.Translate(err)
	c.JSON(r.StatusCode, ErrorBody{Error: r.Message, Code: r.Code, Details: r.Details})
	return r
}
