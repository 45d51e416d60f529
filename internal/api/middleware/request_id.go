package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRequestID chave do id da requisição no contexto gin
	ContextRequestID = "request_id"
	// HeaderRequestID cabeçalho de entrada e saída do id
	HeaderRequestID = "X-Request-ID"
)

// requestIDMaxLen ids externos maiores que isso são substituídos
const requestIDMaxLen = 64

// RequestID lê X-Request-ID ou gera um UUID; devolve no cabeçalho da resposta
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderRequestID, rid)

		c.Next()
	}
}
