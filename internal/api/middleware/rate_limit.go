package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/pkg/redis"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// RateLimit limite por militar autenticado (ou IP, antes do JWT), método e rota,
// em janela deslizante no Redis. rdb nil ou Redis fora do ar: a requisição segue.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := rateLimitKey(c)
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("limite de requisições indisponível", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			logger.Warn("limite de requisições excedido",
				zap.String("key", key),
				zap.String("request_id", c.GetString(ContextRequestID)),
			)
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, 10004, "muitas requisições, tente novamente em instantes")
			c.Abort()
			return
		}

		c.Next()
	}
}

// rate_limit:member:<id>:<método>:<rota> ou rate_limit:ip:<ip>:<método>:<rota>
func rateLimitKey(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = "-"
	}
	if member := c.GetString(ContextMemberID); member != "" {
		return fmt.Sprintf("rate_limit:member:%s:%s:%s", member, c.Request.Method, route)
	}
	return fmt.Sprintf("rate_limit:ip:%s:%s:%s", c.ClientIP(), c.Request.Method, route)
}
