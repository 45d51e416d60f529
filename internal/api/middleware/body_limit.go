package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// BodyLimit limita o corpo da requisição a maxBytes (ex.: 1<<20 = 1MB)
// Content-Length declarado acima do limite é recusado antes do handler.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "corpo da requisição grande demais")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
