package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// ExtraHourHandler livro de horas
type ExtraHourHandler struct {
	extraHourSvc service.ExtraHourService
}

// NewExtraHourHandler cria ExtraHourHandler
func NewExtraHourHandler(extraHourSvc service.ExtraHourService) *ExtraHourHandler {
	return &ExtraHourHandler{extraHourSvc: extraHourSvc}
}

// ListEntries GET /api/v1/extra-hours?member_id=&from=&to=
func (h *ExtraHourHandler) ListEntries(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	entries, err := h.extraHourSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleExtraHourError(c, err)
		return
	}
	response.OK(c, gin.H{"list": entries})
}

// GetEntry GET /api/v1/extra-hours/:id
func (h *ExtraHourHandler) GetEntry(c *gin.Context) {
	entry, err := h.extraHourSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExtraHourError(c, err)
		return
	}
	response.OK(c, entry)
}

// CreateEntry POST /api/v1/extra-hours
func (h *ExtraHourHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateExtraHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	entry, err := h.extraHourSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExtraHourError(c, err)
		return
	}
	response.Created(c, entry)
}

// UpdateEntry PUT /api/v1/extra-hours/:id
func (h *ExtraHourHandler) UpdateEntry(c *gin.Context) {
	var req dto.UpdateExtraHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	entry, err := h.extraHourSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleExtraHourError(c, err)
		return
	}
	response.OK(c, entry)
}

// DeleteEntry DELETE /api/v1/extra-hours/:id
func (h *ExtraHourHandler) DeleteEntry(c *gin.Context) {
	if err := h.extraHourSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleExtraHourError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ExtraHourHandler) handleExtraHourError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExtraHourNotFound):
		response.NotFound(c, 15001, "lançamento não encontrado")
	default:
		response.InternalError(c)
	}
}
