package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

// ReportHandler visões derivadas: linha do tempo, calendário, carga, ranking, matriz e consolidado
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler cria ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Timeline GET /api/v1/reports/timeline?member_id=&from=&to=
func (h *ReportHandler) Timeline(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	resp, err := h.reportSvc.Timeline(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, resp)
}

// Calendar GET /api/v1/reports/calendar?member_id=&from=&to=
func (h *ReportHandler) Calendar(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	days, err := h.reportSvc.Calendar(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, gin.H{"list": days})
}

// MyWorkload carga do militar autenticado
// GET /api/v1/reports/workload/me
func (h *ReportHandler) MyWorkload(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	w, err := h.reportSvc.Workload(c.Request.Context(), memberID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, w)
}

// Workload GET /api/v1/reports/workload/:member_id
func (h *ReportHandler) Workload(c *gin.Context) {
	w, err := h.reportSvc.Workload(c.Request.Context(), c.Param("member_id"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, w)
}

// Workloads GET /api/v1/reports/workload
func (h *ReportHandler) Workloads(c *gin.Context) {
	list, err := h.reportSvc.Workloads(c.Request.Context())
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Ranking GET /api/v1/reports/ranking?type=Estágio&type=...&exclude_manual=true
func (h *ReportHandler) Ranking(c *gin.Context) {
	var q dto.RankingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	rows, err := h.reportSvc.Ranking(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, gin.H{"list": rows})
}

// Matrix GET /api/v1/reports/matrix?tier=12&tier=24
func (h *ReportHandler) Matrix(c *gin.Context) {
	var q dto.MatrixQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	m, err := h.reportSvc.Matrix(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, m)
}

// Consolidated GET /api/v1/reports/consolidated?type=Sobreaviso
func (h *ReportHandler) Consolidated(c *gin.Context) {
	var q dto.ConsolidatedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	rows, err := h.reportSvc.Consolidated(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, gin.H{"list": rows})
}

// Catalog GET /api/v1/catalog
func (h *ReportHandler) Catalog(c *gin.Context) {
	response.OK(c, h.reportSvc.Catalog())
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 16001, "militar não encontrado")
	default:
		response.InternalError(c)
	}
}
