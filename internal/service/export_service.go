package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
)

var (
	ErrExportGenerateFail = errors.New("falha ao gerar o arquivo")
)

// ExportService relatórios para impressão e calendário do militar
//
// Os arquivos voltam em bytes.Buffer com o nome sugerido; o handler define os cabeçalhos HTTP.
type ExportService interface {
	RankingWorkbook(ctx context.Context, q *dto.RankingQuery) (*bytes.Buffer, string, error)
	MatrixWorkbook(ctx context.Context, q *dto.MatrixQuery) (*bytes.Buffer, string, error)
	WorkloadWorkbook(ctx context.Context) (*bytes.Buffer, string, error)
	// MemberCalendar feed .ics com os serviços do militar na linha do tempo unificada
	MemberCalendar(ctx context.Context, memberID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	reports ReportService
	program string
	loc     *time.Location
	logger  *zap.Logger
}

// NewExportService cria ExportService
func NewExportService(reports ReportService, program string, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{reports: reports, program: program, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Ranking
// ═══════════════════════════════════════════════════════════
//
// | Pos | Posto | Nome | Escala/Estágio (h) | Manual (h) | Total (h) |

func (s *exportService) RankingWorkbook(ctx context.Context, q *dto.RankingQuery) (*bytes.Buffer, string, error) {
	rows, err := s.reports.Ranking(ctx, q)
	if err != nil {
		return nil, "", err
	}

	scope := "todos os serviços"
	if len(q.Types) > 0 {
		scope = strings.Join(q.Types, ", ")
	}

	wb := newWorkbook("Ranking")
	defer wb.f.Close()

	wb.title(fmt.Sprintf("%s - Ranking de horas (%s)", s.program, scope), 6)
	wb.header(2, "Pos", "Posto", "Nome", "Escala/Estágio (h)", "Manual (h)", "Total (h)")
	for i, r := range rows {
		wb.row(3+i, r.Position, r.Rank, r.Name, duty.Round1(r.TimelineHours), duty.Round1(r.ManualHours), duty.Round1(r.TotalHours))
	}
	wb.widths(6, 10, 32, 20, 14, 14)

	return s.finish(wb, fmt.Sprintf("ranking_%s.xlsx", time.Now().In(s.loc).Format("20060102")))
}

// ═══════════════════════════════════════════════════════════
// Matriz de estágio
// ═══════════════════════════════════════════════════════════
//
// Duas linhas de cabeçalho: local (mesclado sobre as faixas) e faixa.
// Cada célula mostra "manual + escala = total".

func (s *exportService) MatrixWorkbook(ctx context.Context, q *dto.MatrixQuery) (*bytes.Buffer, string, error) {
	m, err := s.reports.Matrix(ctx, q)
	if err != nil {
		return nil, "", err
	}

	wb := newWorkbook("Estágios")
	defer wb.f.Close()

	cols := 3 + len(m.Locations)*len(m.Tiers)
	wb.title(fmt.Sprintf("%s - Estágios por local e faixa", s.program), cols)
	wb.header(2, "Posto", "Nome")
	wb.header(3, "", "")
	for i, loc := range m.Locations {
		first := 3 + i*len(m.Tiers)
		wb.set(first, 2, loc)
		wb.merge(first, 2, first+len(m.Tiers)-1, 2)
		for j, tier := range m.Tiers {
			wb.set(first+j, 3, fmt.Sprintf("%dh", tier))
		}
	}
	wb.set(cols, 2, "Total")
	wb.style(1, 2, cols, 3, wb.headerStyle)

	for r, row := range m.Rows {
		line := 4 + r
		wb.set(1, line, row.Rank)
		wb.set(2, line, row.Name)
		for i := range m.Locations {
			for j := range m.Tiers {
				c := row.Cells[i][j]
				text := "-"
				if c.Total() > 0 {
					text = fmt.Sprintf("%d + %d = %d", c.Manual, c.Timeline, c.Total())
				}
				wb.set(3+i*len(m.Tiers)+j, line, text)
			}
		}
		wb.set(cols, line, row.Total)
	}

	return s.finish(wb, fmt.Sprintf("estagios_%s.xlsx", time.Now().In(s.loc).Format("20060102")))
}

// ═══════════════════════════════════════════════════════════
// Carga por militar
// ═══════════════════════════════════════════════════════════
//
// Uma linha por militar; horas por tipo de duração e unidades por tipo contado.

func (s *exportService) WorkloadWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	workloads, err := s.reports.Workloads(ctx)
	if err != nil {
		return nil, "", err
	}

	wb := newWorkbook("Carga")
	defer wb.f.Close()

	headers := []interface{}{"Posto", "Nome"}
	for _, t := range duty.Catalog {
		if t.QuantityBased() {
			headers = append(headers, string(t)+" (qtd)")
		} else {
			headers = append(headers, string(t)+" (h)")
		}
	}
	headers = append(headers, "Total (h)", "Total (qtd)")

	wb.title(fmt.Sprintf("%s - Carga de serviço", s.program), len(headers))
	wb.header(2, headers...)
	for i, w := range workloads {
		byType := make(map[duty.Type]duty.WorkloadLine, len(w.Breakdown))
		for _, l := range w.Breakdown {
			byType[l.Type] = l
		}
		values := []interface{}{w.Rank, w.Name}
		for _, t := range duty.Catalog {
			l := byType[t]
			if t.QuantityBased() {
				values = append(values, l.Units())
			} else {
				values = append(values, duty.Round1(l.Hours()))
			}
		}
		values = append(values, duty.Round1(w.TotalHours), w.TotalUnits)
		wb.row(3+i, values...)
	}
	wb.widths(10, 32)

	return s.finish(wb, fmt.Sprintf("carga_%s.xlsx", time.Now().In(s.loc).Format("20060102")))
}

// ═══════════════════════════════════════════════════════════
// Calendário .ics
// ═══════════════════════════════════════════════════════════

func (s *exportService) MemberCalendar(ctx context.Context, memberID string) (*bytes.Buffer, string, error) {
	tl, err := s.reports.Timeline(ctx, &dto.RangeQuery{MemberID: memberID})
	if err != nil {
		return nil, "", err
	}
	w, err := s.reports.Workload(ctx, memberID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cfo-escala//escala//PT")
	cal.SetXWRCalName(fmt.Sprintf("Serviços - %s", w.Name))
	cal.SetXWRTimezone(s.loc.String())

	stamp := time.Now().UTC()
	for _, e := range tl.Entries {
		evt := cal.AddEvent(fmt.Sprintf("%s-%s@cfo-escala", e.Source, e.SourceID))
		evt.SetDtStampTime(stamp)
		evt.SetSummary(string(e.Type))
		if e.Location != "" {
			evt.SetLocation(e.Location)
		}
		evt.SetDescription(eventDescription(e))

		start, end, timed := s.eventSpan(e)
		if timed {
			evt.SetStartAt(start)
			evt.SetEndAt(end)
		} else {
			evt.SetAllDayStartAt(start)
			evt.SetAllDayEndAt(start.AddDate(0, 0, 1))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("servicos_%s.ics", memberID), nil
}

// eventSpan início no horário exibido; fim pelo número de horas calculado, ou pelo horário de término
func (s *exportService) eventSpan(e duty.Entry) (time.Time, time.Time, bool) {
	date := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, s.loc)
	startMin, err := duty.ParseClock(e.Start)
	if err != nil {
		return date, date, false
	}
	start := date.Add(time.Duration(startMin) * time.Minute)

	if e.Hours > 0 {
		return start, start.Add(time.Duration(e.Hours * float64(time.Hour))), true
	}
	if h, ok := duty.WallClockHours(e.Start, e.End); ok {
		return start, start.Add(time.Duration(h * float64(time.Hour))), true
	}
	return start, start.Add(time.Hour), true
}

func eventDescription(e duty.Entry) string {
	parts := []string{fmt.Sprintf("Origem: %s", e.Source)}
	if e.Type.QuantityBased() {
		parts = append(parts, "Contagem: 1")
	} else {
		parts = append(parts, fmt.Sprintf("Horas: %.1f", duty.Round1(e.Hours)))
	}
	if e.Holiday {
		parts = append(parts, "Feriado")
	}
	if e.Status != "" {
		parts = append(parts, "Status: "+e.Status)
	}
	return strings.Join(parts, " | ")
}

// ── planilha ──

type workbook struct {
	f           *excelize.File
	sheet       string
	headerStyle int
}

func newWorkbook(sheet string) *workbook {
	f := excelize.NewFile()
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return &workbook{f: f, sheet: sheet, headerStyle: style}
}

func (w *workbook) set(col, row int, v interface{}) {
	c, _ := excelize.CoordinatesToCellName(col, row)
	w.f.SetCellValue(w.sheet, c, v)
}

func (w *workbook) row(row int, values ...interface{}) {
	for i, v := range values {
		w.set(i+1, row, v)
	}
}

func (w *workbook) header(row int, values ...interface{}) {
	w.row(row, values...)
	if len(values) > 0 {
		w.style(1, row, len(values), row, w.headerStyle)
	}
}

func (w *workbook) title(text string, cols int) {
	w.set(1, 1, text)
	if cols > 1 {
		w.merge(1, 1, cols, 1)
	}
	w.style(1, 1, 1, 1, w.headerStyle)
}

func (w *workbook) merge(c1, r1, c2, r2 int) {
	if c1 == c2 && r1 == r2 {
		return
	}
	a, _ := excelize.CoordinatesToCellName(c1, r1)
	b, _ := excelize.CoordinatesToCellName(c2, r2)
	w.f.MergeCell(w.sheet, a, b)
}

func (w *workbook) style(c1, r1, c2, r2, style int) {
	a, _ := excelize.CoordinatesToCellName(c1, r1)
	b, _ := excelize.CoordinatesToCellName(c2, r2)
	w.f.SetCellStyle(w.sheet, a, b, style)
}

func (w *workbook) widths(widths ...float64) {
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		w.f.SetColWidth(w.sheet, col, col, width)
	}
}

func (s *exportService) finish(wb *workbook, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := wb.f.Write(buf); err != nil {
		s.logger.Error("falha ao escrever planilha", zap.String("file", filename), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, filename, nil
}
