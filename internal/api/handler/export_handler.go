package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler downloads de planilhas e calendários
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler cria ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRanking GET /api/v1/export/ranking?type=...&exclude_manual=
func (h *ExportHandler) ExportRanking(c *gin.Context) {
	var q dto.RankingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	buf, filename, err := h.exportSvc.RankingWorkbook(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeXLSX)
}

// ExportMatrix GET /api/v1/export/matrix?tier=12&tier=24
func (h *ExportHandler) ExportMatrix(c *gin.Context) {
	var q dto.MatrixQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	buf, filename, err := h.exportSvc.MatrixWorkbook(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeXLSX)
}

// ExportWorkload GET /api/v1/export/workload
func (h *ExportHandler) ExportWorkload(c *gin.Context) {
	buf, filename, err := h.exportSvc.WorkloadWorkbook(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeXLSX)
}

// ExportCalendar GET /api/v1/export/calendar/:member_id
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.MemberCalendar(c.Request.Context(), c.Param("member_id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeICS)
}

func sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if handleCommonError(c, err, nil) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 17001, "militar não encontrado")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
