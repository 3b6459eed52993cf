package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON error body shared by handlers and middleware.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError writes the body and records err on the context so the error
// middleware and access log can see the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
