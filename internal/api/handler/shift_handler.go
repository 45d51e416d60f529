package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// ShiftHandler escala
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler cria ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListShifts GET /api/v1/shifts?member_id=&from=&to=
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	shifts, err := h.shiftSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleShiftError(c, err, nil)
		return
	}
	response.OK(c, gin.H{"list": shifts})
}

// GetShift GET /api/v1/shifts/:id
func (h *ShiftHandler) GetShift(c *gin.Context) {
	shift, err := h.shiftSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleShiftError(c, err, nil)
		return
	}
	response.OK(c, shift)
}

// CreateShift POST /api/v1/shifts
// Com sync_stage, falha ao gravar o estágio responde 502 com a escala já gravada em data.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	shift, err := h.shiftSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err, shift)
		return
	}
	response.Created(c, shift)
}

// UpdateShift PUT /api/v1/shifts/:id
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	shift, err := h.shiftSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleShiftError(c, err, nil)
		return
	}
	response.OK(c, shift)
}

// DeleteShift DELETE /api/v1/shifts/:id
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	if err := h.shiftSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleShiftError(c, err, nil)
		return
	}
	response.OK(c, nil)
}

// ReplaceDays sobrescreve dias inteiros da escala
// PUT /api/v1/shifts/days
func (h *ShiftHandler) ReplaceDays(c *gin.Context) {
	var req dto.ReplaceDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	resp, err := h.shiftSvc.ReplaceDays(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err, nil)
		return
	}
	response.OK(c, resp)
}

func (h *ShiftHandler) handleShiftError(c *gin.Context, err error, partial interface{}) {
	if handleCommonError(c, err, partial) {
		return
	}
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, "escala não encontrada")
	default:
		response.InternalError(c)
	}
}
