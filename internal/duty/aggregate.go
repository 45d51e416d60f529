package duty

import (
	"math"
	"sort"
	"time"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// DefaultTiers faixas de duração do estágio
var DefaultTiers = []int{12, 24}

const tierTolerance = 0.01

// Round1 arredonda para uma casa decimal (somente exibição)
func Round1(h float64) float64 {
	return math.Round(h*10) / 10
}

// ════════════════════════════════════════════════════════════
// Carga individual
// ════════════════════════════════════════════════════════════

// WorkloadLine totais de um tipo de serviço
type WorkloadLine struct {
	Type          Type    `json:"type"`
	TimelineHours float64 `json:"timeline_hours"`
	TimelineUnits int     `json:"timeline_units"`
	ManualHours   float64 `json:"manual_hours"`
	ManualUnits   int     `json:"manual_units"`
}

// Hours horas totais do tipo
func (l WorkloadLine) Hours() float64 { return l.TimelineHours + l.ManualHours }

// Units ocorrências totais do tipo
func (l WorkloadLine) Units() int { return l.TimelineUnits + l.ManualUnits }

// Workload carga de trabalho de um militar
type Workload struct {
	MemberID   string         `json:"member_id"`
	Name       string         `json:"name"`
	Rank       string         `json:"rank"`
	Breakdown  []WorkloadLine `json:"breakdown"`
	TotalHours float64        `json:"total_hours"`
	TotalUnits int            `json:"total_units"`
}

// MemberWorkload soma horas dos serviços por duração, conta os serviços por ocorrência e
// acrescenta os contadores manuais cujo rótulo casa com o tipo
func MemberWorkload(tl Timeline, member model.ServiceMember) Workload {
	lines := make(map[Type]*WorkloadLine)
	line := func(t Type) *WorkloadLine {
		if l, ok := lines[t]; ok {
			return l
		}
		l := &WorkloadLine{Type: t}
		lines[t] = l
		return l
	}

	for _, e := range tl.Entries {
		if !e.Known || e.MemberID != member.MemberID {
			continue
		}
		l := line(e.Type)
		if e.Type.QuantityBased() {
			l.TimelineUnits++
		} else {
			l.TimelineHours += e.Hours
		}
	}

	for _, mc := range tl.Manual {
		if mc.MemberID != member.MemberID || mc.Category.DutyType == "" {
			continue
		}
		l := line(mc.Category.DutyType)
		l.ManualHours += mc.Hours
		if mc.Category.DutyType.QuantityBased() {
			l.ManualUnits += mc.Units
		}
	}

	w := Workload{MemberID: member.MemberID, Name: member.Name, Rank: member.Rank}
	for _, l := range lines {
		w.Breakdown = append(w.Breakdown, *l)
		w.TotalHours += l.Hours()
		w.TotalUnits += l.Units()
	}
	sort.Slice(w.Breakdown, func(i, j int) bool {
		a, b := w.Breakdown[i].Type, w.Breakdown[j].Type
		if a.Priority() != b.Priority() {
			return a.Priority() < b.Priority()
		}
		return a < b
	})
	return w
}

// ════════════════════════════════════════════════════════════
// Ranking
// ════════════════════════════════════════════════════════════

// RankingFilter tipos considerados; vazio = todos os serviços por duração
type RankingFilter struct {
	Types         []Type
	ExcludeManual bool
}

func (f RankingFilter) includes(t Type) bool {
	if t.QuantityBased() {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, x := range f.Types {
		if x == t {
			return true
		}
	}
	return false
}

// RankingRow linha do ranking
type RankingRow struct {
	Position      int     `json:"position"`
	MemberID      string  `json:"member_id"`
	Name          string  `json:"name"`
	Rank          string  `json:"rank"`
	TimelineHours float64 `json:"timeline_hours"`
	ManualHours   float64 `json:"manual_hours"`
	TotalHours    float64 `json:"total_hours"`
}

// Ranking ordena o efetivo por horas totais (decrescente); empates mantêm a ordem do efetivo.
// Todo militar do efetivo aparece, mesmo com zero horas.
func Ranking(tl Timeline, members []model.ServiceMember, filter RankingFilter) []RankingRow {
	rows := make([]RankingRow, len(members))
	pos := make(map[string]int, len(members))
	for i, m := range members {
		rows[i] = RankingRow{MemberID: m.MemberID, Name: m.Name, Rank: m.Rank}
		pos[m.MemberID] = i
	}

	for _, e := range tl.Entries {
		i, ok := pos[e.MemberID]
		if !ok || !e.Known || !filter.includes(e.Type) {
			continue
		}
		rows[i].TimelineHours += e.Hours
	}

	if !filter.ExcludeManual {
		for _, mc := range tl.Manual {
			i, ok := pos[mc.MemberID]
			if !ok || mc.Category.DutyType == "" || !filter.includes(mc.Category.DutyType) {
				continue
			}
			rows[i].ManualHours += mc.Hours
		}
	}

	for i := range rows {
		rows[i].TotalHours = rows[i].TimelineHours + rows[i].ManualHours
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalHours > rows[j].TotalHours
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// ════════════════════════════════════════════════════════════
// Matriz de estágio por local × faixa
// ════════════════════════════════════════════════════════════

// MatrixCell contagens de uma célula
type MatrixCell struct {
	Manual   int `json:"manual"`
	Timeline int `json:"timeline"`
}

// Total manual + linha do tempo
func (c MatrixCell) Total() int { return c.Manual + c.Timeline }

// MatrixRow linha de um militar; Cells[local][faixa]
type MatrixRow struct {
	MemberID string         `json:"member_id"`
	Name     string         `json:"name"`
	Rank     string         `json:"rank"`
	Cells    [][]MatrixCell `json:"cells"`
	Total    int            `json:"total"`
}

// Matrix estágios por local oficial e faixa de duração
type Matrix struct {
	Locations []string    `json:"locations"`
	Tiers     []int       `json:"tiers"`
	Rows      []MatrixRow `json:"rows"`
}

// LocationMatrix conta estágios por (militar, local oficial, faixa).
// Contagem manual vem das categorias com local+faixa; a da linha do tempo vem das entradas de
// estágio cujo local casa com o catálogo e cuja duração bate com a faixa.
func LocationMatrix(tl Timeline, members []model.ServiceMember, catalog *LocationCatalog, tiers []int) Matrix {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	locations := catalog.Labels()
	locIdx := make(map[string]int, len(locations))
	for i, l := range locations {
		locIdx[l] = i
	}

	m := Matrix{Locations: locations, Tiers: tiers, Rows: make([]MatrixRow, len(members))}
	pos := make(map[string]int, len(members))
	for i, mem := range members {
		cells := make([][]MatrixCell, len(locations))
		for j := range cells {
			cells[j] = make([]MatrixCell, len(tiers))
		}
		m.Rows[i] = MatrixRow{MemberID: mem.MemberID, Name: mem.Name, Rank: mem.Rank, Cells: cells}
		pos[mem.MemberID] = i
	}

	cell := func(memberID, location string, tierIdx int) *MatrixCell {
		i, ok := pos[memberID]
		if !ok || tierIdx < 0 {
			return nil
		}
		label, ok := catalog.Match(location)
		if !ok {
			return nil
		}
		return &m.Rows[i].Cells[locIdx[label]][tierIdx]
	}

	for _, e := range tl.Entries {
		if e.Type != TypeInternship || !e.Known {
			continue
		}
		if c := cell(e.MemberID, e.Location, tierIndex(tiers, e.Hours)); c != nil {
			c.Timeline++
		}
	}
	for _, mc := range tl.Manual {
		if mc.Category.Kind != KindManualInternship {
			continue
		}
		if c := cell(mc.MemberID, mc.Category.Location, tierIndex(tiers, float64(mc.Category.Tier))); c != nil {
			c.Manual += mc.Units
		}
	}

	for i := range m.Rows {
		for _, byTier := range m.Rows[i].Cells {
			for _, c := range byTier {
				m.Rows[i].Total += c.Total()
			}
		}
	}
	return m
}

func tierIndex(tiers []int, hours float64) int {
	for i, t := range tiers {
		if math.Abs(hours-float64(t)) < tierTolerance {
			return i
		}
	}
	return -1
}

// ════════════════════════════════════════════════════════════
// Contagem consolidada (sobreaviso, faxina, manutenção, bar)
// ════════════════════════════════════════════════════════════

// ConsolidatedRow contagem manual + linha do tempo de um militar
type ConsolidatedRow struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Rank     string `json:"rank"`
	Manual   int    `json:"manual"`
	Timeline int    `json:"timeline"`
	Total    int    `json:"total"`
}

// ConsolidatedCount soma contadores "<Curso> - <Tipo>" e ocorrências do tipo na linha do tempo
func ConsolidatedCount(tl Timeline, members []model.ServiceMember, t Type) []ConsolidatedRow {
	rows := make([]ConsolidatedRow, len(members))
	pos := make(map[string]int, len(members))
	for i, m := range members {
		rows[i] = ConsolidatedRow{MemberID: m.MemberID, Name: m.Name, Rank: m.Rank}
		pos[m.MemberID] = i
	}

	for _, e := range tl.Entries {
		if i, ok := pos[e.MemberID]; ok && e.Known && e.Type == t {
			rows[i].Timeline++
		}
	}
	for _, mc := range tl.Manual {
		if mc.Category.Kind != KindManualTally || mc.Category.DutyType != t {
			continue
		}
		if i, ok := pos[mc.MemberID]; ok {
			rows[i].Manual += mc.Units
		}
	}

	for i := range rows {
		rows[i].Total = rows[i].Manual + rows[i].Timeline
	}
	return rows
}

// ════════════════════════════════════════════════════════════
// Calendário
// ════════════════════════════════════════════════════════════

// CalendarDay entradas de um dia, na ordem da linha do tempo
type CalendarDay struct {
	Date    string  `json:"date"`
	Holiday bool    `json:"holiday"`
	Entries []Entry `json:"entries"`
}

// CalendarDays agrupa a linha do tempo por dia dentro de [from, to]; datas zero não limitam
func CalendarDays(tl Timeline, from, to time.Time) []CalendarDay {
	byDay := make(map[string]*CalendarDay)
	var keys []string
	for _, e := range tl.Entries {
		if !from.IsZero() && e.Date.Before(model.Day(from)) {
			continue
		}
		if !to.IsZero() && e.Date.After(model.Day(to)) {
			continue
		}
		k := e.DateKey()
		d, ok := byDay[k]
		if !ok {
			d = &CalendarDay{Date: k, Holiday: tl.Holidays[k]}
			byDay[k] = d
			keys = append(keys, k)
		}
		d.Entries = append(d.Entries, e)
	}

	sort.Strings(keys)
	days := make([]CalendarDay, 0, len(keys))
	for _, k := range keys {
		days = append(days, *byDay[k])
	}
	return days
}

// Filter entradas que satisfazem keep, preservando a ordem
func (tl Timeline) Filter(keep func(Entry) bool) Timeline {
	out := Timeline{Manual: tl.Manual, Anomalies: tl.Anomalies, Holidays: tl.Holidays}
	for _, e := range tl.Entries {
		if keep(e) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}
