package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// HolidayHandler feriados
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler cria HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays GET /api/v1/holidays?from=&to=
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	holidays, err := h.holidaySvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, gin.H{"list": holidays})
}

// GetHoliday GET /api/v1/holidays/:id
func (h *HolidayHandler) GetHoliday(c *gin.Context) {
	holiday, err := h.holidaySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, holiday)
}

// CreateHoliday POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.Created(c, holiday)
}

// UpdateHoliday PUT /api/v1/holidays/:id
func (h *HolidayHandler) UpdateHoliday(c *gin.Context) {
	var req dto.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	holiday, err := h.holidaySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, holiday)
}

// DeleteHoliday DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	if err := h.holidaySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportHolidays importa um calendário .ics
// POST /api/v1/holidays/import (multipart "file" ou JSON {"url": ...})
func (h *HolidayHandler) ImportHolidays(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		created, err := h.holidaySvc.ImportICS(c.Request.Context(), file)
		if err != nil {
			h.handleHolidayError(c, err)
			return
		}
		response.Created(c, gin.H{"list": created})
		return
	}

	var req dto.ImportHolidaysRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 12002, "envie o arquivo .ics ou informe a URL do calendário")
		return
	}

	body, err := service.FetchICSContent(req.URL)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12003, "falha ao baixar o calendário", err.Error())
		return
	}
	defer body.Close()

	created, err := h.holidaySvc.ImportICS(c.Request.Context(), body)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.Created(c, gin.H{"list": created})
}

func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 12001, "feriado não encontrado")
	default:
		response.InternalError(c)
	}
}
