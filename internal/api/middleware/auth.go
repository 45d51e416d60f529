package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/pkg/jwt"
	"github.com/azalim25/cfoescala-sub000/pkg/redis"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// Papéis aceitos no token
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Chaves do contexto gin preenchidas pelo JWTAuth
const (
	ContextMemberID    = "member_id"
	ContextRole        = "role"
	ContextTokenID     = "token_id"
	ContextTokenExpiry = "token_expiry"
)

// JWTAuth valida Authorization: Bearer <token>
// rdb nil desliga a consulta de revogação; falha do Redis não bloqueia a requisição.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação ausente")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido ou expirado")
			c.Abort()
			return
		}

		switch claims.Role {
		case RoleMember, RoleModerator, RoleAdmin:
		default:
			response.Unauthorized(c, 10002, "papel do token desconhecido")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("falha ao consultar revogação de token", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "token revogado")
				c.Abort()
				return
			}
		}

		c.Set(ContextMemberID, claims.MemberID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RoleAuth exige um dos papéis informados
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, 10002, "não autenticado")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "sem permissão para esta operação")
		c.Abort()
	}
}
