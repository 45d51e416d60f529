package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// StageHandler estágios da tela dedicada
type StageHandler struct {
	stageSvc service.StageService
}

// NewStageHandler cria StageHandler
func NewStageHandler(stageSvc service.StageService) *StageHandler {
	return &StageHandler{stageSvc: stageSvc}
}

// ListStages GET /api/v1/stages?member_id=&from=&to=
func (h *StageHandler) ListStages(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	stages, err := h.stageSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleStageError(c, err)
		return
	}
	response.OK(c, gin.H{"list": stages})
}

// GetStage GET /api/v1/stages/:id
func (h *StageHandler) GetStage(c *gin.Context) {
	stage, err := h.stageSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStageError(c, err)
		return
	}
	response.OK(c, stage)
}

// CreateStage POST /api/v1/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	stage, err := h.stageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}
	response.Created(c, stage)
}

// UpdateStage PUT /api/v1/stages/:id
func (h *StageHandler) UpdateStage(c *gin.Context) {
	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	stage, err := h.stageSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleStageError(c, err)
		return
	}
	response.OK(c, stage)
}

// DeleteStage DELETE /api/v1/stages/:id
func (h *StageHandler) DeleteStage(c *gin.Context) {
	if err := h.stageSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStageError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *StageHandler) handleStageError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, 14001, "estágio não encontrado")
	case errors.Is(err, service.ErrStageExists):
		response.Conflict(c, 14002, "o militar já tem estágio registrado nesta data")
	default:
		response.InternalError(c)
	}
}
