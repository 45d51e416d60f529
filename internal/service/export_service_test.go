package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

// ── auxiliares ──

func setupTestExportService(t *testing.T) ExportService {
	t.Helper()
	reports, _ := setupTestReportService(t)
	return NewExportService(reports, "CFO I", time.UTC, zap.NewNop())
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

// ── RankingWorkbook ──

func TestExportService_RankingWorkbook(t *testing.T) {
	svc := setupTestExportService(t)

	buf, filename, err := svc.RankingWorkbook(context.Background(), &dto.RankingQuery{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "ranking_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ranking"}, f.GetSheetList())
	assert.Equal(t, "Nome", cell(t, f, "Ranking", "C2"))
	assert.Equal(t, "1", cell(t, f, "Ranking", "A3"))
	assert.Equal(t, "Bruno", cell(t, f, "Ranking", "C3"))
	assert.Equal(t, "24", cell(t, f, "Ranking", "F3"))
	assert.Equal(t, "Ana", cell(t, f, "Ranking", "C4"))
	assert.Equal(t, "15", cell(t, f, "Ranking", "F4"))
}

func TestExportService_RankingWorkbook_InvalidType(t *testing.T) {
	svc := setupTestExportService(t)

	_, _, err := svc.RankingWorkbook(context.Background(), &dto.RankingQuery{Types: []string{"Faxina"}})
	assert.True(t, pkgerrors.IsValidation(err))
}

// ── MatrixWorkbook ──

func TestExportService_MatrixWorkbook(t *testing.T) {
	svc := setupTestExportService(t)

	buf, _, err := svc.MatrixWorkbook(context.Background(), &dto.MatrixQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Estágios"
	// locais: 1°BBM (C-D), COBOM (E-F), QCG (G-H); total em I
	assert.Equal(t, "COBOM", cell(t, f, sheet, "E2"))
	assert.Equal(t, "24h", cell(t, f, sheet, "F3"))
	assert.Equal(t, "Ana", cell(t, f, sheet, "B4"))
	assert.Equal(t, "-", cell(t, f, sheet, "F4"))
	assert.Equal(t, "Bruno", cell(t, f, sheet, "B5"))
	assert.Equal(t, "0 + 1 = 1", cell(t, f, sheet, "F5"))
	assert.Equal(t, "1", cell(t, f, sheet, "I5"))
}

// ── WorkloadWorkbook ──

func TestExportService_WorkloadWorkbook(t *testing.T) {
	svc := setupTestExportService(t)

	buf, _, err := svc.WorkloadWorkbook(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	// colunas: Posto, Nome, 7 tipos do catálogo, Total (h), Total (qtd)
	assert.Equal(t, "Comandante da Guarda (h)", cell(t, f, "Carga", "C2"))
	assert.Equal(t, "Sobreaviso (qtd)", cell(t, f, "Carga", "F2"))
	assert.Equal(t, "Ana", cell(t, f, "Carga", "B3"))
	assert.Equal(t, "11", cell(t, f, "Carga", "C3"))
	assert.Equal(t, "2", cell(t, f, "Carga", "F3"))
	assert.Equal(t, "15", cell(t, f, "Carga", "J3"))
	assert.Equal(t, "2", cell(t, f, "Carga", "K3"))
}

// ── MemberCalendar ──

func TestExportService_MemberCalendar(t *testing.T) {
	svc := setupTestExportService(t)

	buf, filename, err := svc.MemberCalendar(context.Background(), "m2")
	require.NoError(t, err)
	assert.Equal(t, "servicos_m2.ics", filename)

	cal, err := ics.ParseCalendar(buf)
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	summary := events[0].GetProperty(ics.ComponentPropertySummary)
	require.NotNil(t, summary)
	assert.Equal(t, "Estágio", summary.Value)
	location := events[0].GetProperty(ics.ComponentPropertyLocation)
	require.NotNil(t, location)
	assert.Equal(t, "COBOM", location.Value)

	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	end, err := events[0].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestExportService_MemberCalendar_UnknownMember(t *testing.T) {
	svc := setupTestExportService(t)

	_, _, err := svc.MemberCalendar(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrMemberNotFound))
}
