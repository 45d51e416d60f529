package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// MemberHandler efetivo
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler cria MemberHandler
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// ListMembers GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// GetMember GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.memberSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// CreateMember POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	member, err := h.memberSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}
	response.Created(c, member)
}

// UpdateMember PUT /api/v1/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	member, err := h.memberSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// DeleteMember DELETE /api/v1/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	if err := h.memberSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMemberError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MemberHandler) handleMemberError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 11001, "militar não encontrado")
	case errors.Is(err, service.ErrServiceNumberInUse):
		response.Conflict(c, 11002, "matrícula já cadastrada")
	default:
		response.InternalError(c)
	}
}
