package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data as the response body with no envelope
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// NoContent writes an empty response, used for 204
func NoContent(c *gin.Context, code int) {
	c.Status(code)
	c.Writer.WriteHeaderNow()
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	if reqID := c.GetString(RequestIDKey); reqID != "" {
		c.Header(RequestIDHeader, reqID)
	}
	c.JSON(code, ErrorBody{Error: message})
}

const (
	RequestIDKey    = "RequestID"
	RequestIDHeader = "X-Request-ID"
)
