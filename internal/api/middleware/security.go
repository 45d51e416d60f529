package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders cabeçalhos de segurança da API (sem páginas HTML servidas)
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")
		// planilhas e .ics exportados não abrem direto no navegador
		c.Header("X-Download-Options", "noopen")
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}

		c.Next()
	}
}
