package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/api/middleware"
	"github.com/azalim25/cfoescala-sub000/pkg/redis"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// AuthHandler sessão do token
// Os tokens são emitidos pelo provedor de identidade (ou pelo escalactl em ambiente local).
type AuthHandler struct {
	rdb *redis.Client
}

// NewAuthHandler cria AuthHandler
func NewAuthHandler(rdb *redis.Client) *AuthHandler {
	return &AuthHandler{rdb: rdb}
}

// Me identidade do token atual
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{"member_id": memberID, "role": role})
}

// Logout revoga o token atual até a expiração
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb == nil {
		response.OK(c, nil)
		return
	}
	jti := c.GetString(middleware.ContextTokenID)
	exp, _ := c.Get(middleware.ContextTokenExpiry)
	ttl := time.Hour
	if t, ok := exp.(time.Time); ok {
		ttl = time.Until(t)
	}
	if err := h.rdb.RevokeToken(c.Request.Context(), jti, ttl); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
