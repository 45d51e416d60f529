package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/api/middleware"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// Códigos comuns a todos os módulos
const (
	codeBadRequest   = 10001
	codeUnauthorized = 10002
	codeValidation   = 42200
	codePartialWrite = 50200
)

// MustGetMemberID lê o member_id injetado pelo JWTAuth.
// ok=false já escreveu 401; o chamador só precisa retornar.
func MustGetMemberID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextMemberID)
	if s == "" {
		response.Unauthorized(c, codeUnauthorized, "não autenticado")
		return "", false
	}
	return s, true
}

// MustGetRole lê o papel injetado pelo JWTAuth
func MustGetRole(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextRole)
	if s == "" {
		response.Unauthorized(c, codeUnauthorized, "não autenticado")
		return "", false
	}
	return s, true
}

// handleCommonError validação (422) e gravação parcial (502); false quando o erro é de outro tipo
func handleCommonError(c *gin.Context, err error, partial interface{}) bool {
	var v *pkgerrors.ValidationError
	switch {
	case errors.As(err, &v):
		response.UnprocessableEntity(c, codeValidation, v.Message, v.Field)
		return true
	case errors.Is(err, pkgerrors.ErrPartialWrite):
		response.PartialWrite(c, codePartialWrite, err.Error(), partial)
		return true
	}
	return false
}

func badRequest(c *gin.Context) {
	response.BadRequest(c, codeBadRequest, "parâmetros inválidos")
}
