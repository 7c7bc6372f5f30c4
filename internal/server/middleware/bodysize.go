package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimit returns middleware that restricts the request body to max
// bytes. Oversized multipart uploads fail during form parsing with a 400
// rather than filling the disk.
func BodySizeLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
