package duty

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// Source origem de uma entrada da linha do tempo, em ordem de precedência
type Source string

const (
	SourceShift Source = "shift"
	SourceStage Source = "stage"
	SourceExtra Source = "extra"
)

func (s Source) rank() int {
	switch s {
	case SourceShift:
		return 0
	case SourceStage:
		return 1
	}
	return 2
}

// stageMarker par de horários gravado nas entradas vindas da tela de estágio sem horário
var stageMarker = Window{Start: "08:00", End: "08:00"}

// Snapshot cópia completa das coleções lidas do armazenamento
type Snapshot struct {
	Members  []model.ServiceMember
	Shifts   []model.ShiftAssignment
	Stages   []model.StageAssignment
	Extras   []model.ExtraHourEntry
	Holidays []model.Holiday
}

// Entry entrada unificada (nunca persistida)
type Entry struct {
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Known      bool      `json:"known"` // false: militar não está no efetivo
	Date       time.Time `json:"date"`
	Type       Type      `json:"type"`
	Location   string    `json:"location"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Hours      float64   `json:"hours"`
	Holiday    bool      `json:"holiday"`
	Status     string    `json:"status,omitempty"`
	Source     Source    `json:"source"`
	SourceID   string    `json:"source_id"`

	seniority *int
}

// DateKey data no formato ISO
func (e Entry) DateKey() string { return e.Date.Format(model.DateLayout) }

// Units uma unidade de serviço para tipos contados por ocorrência
func (e Entry) Units() int {
	if e.Type.QuantityBased() {
		return 1
	}
	return 0
}

// ManualCounter lançamento legado já agregado; não é um evento datado
type ManualCounter struct {
	EntryID  string   `json:"entry_id"`
	MemberID string   `json:"member_id"`
	Category Category `json:"category"`
	Hours    float64  `json:"hours"`
	Units    int      `json:"units"`
}

// Anomaly inconsistência tolerada durante a reconciliação
type Anomaly struct {
	Kind     string `json:"kind"`
	Source   Source `json:"source"`
	RecordID string `json:"record_id"`
	Detail   string `json:"detail"`
}

const (
	AnomalyOrphanMember       = "orphan_member"
	AnomalyInvalidDate        = "invalid_date"
	AnomalyUnknownCategory    = "unknown_category"
	AnomalyDuplicateStage     = "duplicate_stage"
	AnomalyDuplicateShift     = "duplicate_internship_shift"
	AnomalyUnparsableInterval = "unparsable_interval"
)

// Timeline resultado da reconciliação
type Timeline struct {
	Entries   []Entry         `json:"entries"`
	Manual    []ManualCounter `json:"manual"`
	Anomalies []Anomaly       `json:"anomalies,omitempty"`
	Holidays  map[string]bool `json:"-"`
}

type dayKey struct {
	member string
	date   string
	typ    Type
}

type reconciler struct {
	members  map[string]*model.ServiceMember
	holidays map[string]bool

	entries   []Entry
	index     map[dayKey]int
	manual    []ManualCounter
	anomalies []Anomaly
}

// Reconcile funde escala, estágio e livro de horas numa linha do tempo sem duplicidade.
// Precedência: escala > estágio > livro de horas. Anomalias nunca interrompem o processo.
func Reconcile(snap Snapshot) Timeline {
	r := &reconciler{
		members:  make(map[string]*model.ServiceMember, len(snap.Members)),
		holidays: HolidaySet(snap.Holidays),
		index:    make(map[dayKey]int),
	}
	for i := range snap.Members {
		r.members[snap.Members[i].MemberID] = &snap.Members[i]
	}

	for i := range snap.Shifts {
		r.addShift(&snap.Shifts[i])
	}
	for i := range snap.Stages {
		r.addStage(&snap.Stages[i])
	}
	for i := range snap.Extras {
		r.addExtra(&snap.Extras[i])
	}

	sortEntries(r.entries)

	return Timeline{
		Entries:   r.entries,
		Manual:    r.manual,
		Anomalies: r.anomalies,
		Holidays:  r.holidays,
	}
}

// HolidaySet datas de feriado em formato ISO
func HolidaySet(holidays []model.Holiday) map[string]bool {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if h.Date.IsZero() {
			continue
		}
		set[h.Date.Format(model.DateLayout)] = true
	}
	return set
}

// ── etapa 1: escala ──

func (r *reconciler) addShift(s *model.ShiftAssignment) {
	if s.Date.IsZero() {
		r.anomaly(AnomalyInvalidDate, SourceShift, s.ShiftID, "escala sem data")
		return
	}
	date := model.Day(s.Date)
	typ, ok := ParseType(s.DutyType)
	if !ok {
		typ = Type(strings.TrimSpace(s.DutyType))
	}

	key := dayKey{member: s.MemberID, date: date.Format(model.DateLayout), typ: typ}
	if typ == TypeInternship {
		if _, dup := r.index[key]; dup {
			r.anomaly(AnomalyDuplicateShift, SourceShift, s.ShiftID, "estágio repetido no mesmo dia")
			return
		}
	}

	holiday := r.holidays[key.date]
	hours := ComputeHours(DurationInput{
		Type:     typ,
		Date:     date,
		Start:    s.StartTime,
		End:      s.EndTime,
		Explicit: s.ExplicitDuration,
		Holiday:  holiday,
	})
	if typ == TypeDiverse && s.ExplicitDuration == nil {
		if _, ok := WallClockHours(s.StartTime, s.EndTime); !ok {
			r.anomaly(AnomalyUnparsableInterval, SourceShift, s.ShiftID,
				fmt.Sprintf("horário %q-%q", s.StartTime, s.EndTime))
		}
	}

	win := displayWindow(s.StartTime, s.EndTime, DefaultWindow(typ, date, holiday))
	location := ""
	if s.Location != nil {
		location = strings.TrimSpace(*s.Location)
	}

	r.append(key, Entry{
		MemberID: s.MemberID,
		Date:     date,
		Type:     typ,
		Location: location,
		Start:    win.Start,
		End:      win.End,
		Hours:    hours,
		Holiday:  holiday,
		Status:   s.Status,
		Source:   SourceShift,
		SourceID: s.ShiftID,
	})
}

// ── etapa 2: estágio ──

func (r *reconciler) addStage(s *model.StageAssignment) {
	if s.Date.IsZero() {
		r.anomaly(AnomalyInvalidDate, SourceStage, s.StageID, "estágio sem data")
		return
	}
	date := model.Day(s.Date)
	key := dayKey{member: s.MemberID, date: date.Format(model.DateLayout), typ: TypeInternship}
	location := strings.TrimSpace(s.Location)

	if i, exists := r.index[key]; exists {
		existing := &r.entries[i]
		if existing.Source != SourceShift {
			r.anomaly(AnomalyDuplicateStage, SourceStage, s.StageID, "estágio repetido no mesmo dia")
			return
		}
		if IsHeadquartersOrEmpty(existing.Location) && location != "" {
			existing.Location = location
		}
		return
	}

	holiday := r.holidays[key.date]
	start, end := s.StartTime, s.EndTime
	// 08:00–08:00 é o marcador de "sem horário" da planilha de estágios.
	if isStageMarker(start, end) {
		start, end = "", ""
	}
	hours := ComputeHours(DurationInput{
		Type:     TypeInternship,
		Date:     date,
		Start:    start,
		End:      end,
		Explicit: s.ExplicitDuration,
		Holiday:  holiday,
	})
	if location == "" {
		location = Unspecified
	}
	win := displayWindow(s.StartTime, s.EndTime, stageMarker)

	r.append(key, Entry{
		MemberID: s.MemberID,
		Date:     date,
		Type:     TypeInternship,
		Location: location,
		Start:    win.Start,
		End:      win.End,
		Hours:    hours,
		Holiday:  holiday,
		Source:   SourceStage,
		SourceID: s.StageID,
	})
}

func isStageMarker(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	return sameClock(start, stageMarker.Start) && sameClock(end, stageMarker.End)
}

// ── etapa 3: livro de horas ──

func (r *reconciler) addExtra(e *model.ExtraHourEntry) {
	cat := ParseCategory(e.Category)

	switch cat.Kind {
	case KindManualTally:
		if cat.DutyType == "" {
			r.anomaly(AnomalyUnknownCategory, SourceExtra, e.EntryID, e.Category)
			return
		}
		r.manual = append(r.manual, manualCounter(e, cat))
		return
	case KindManualInternship:
		r.manual = append(r.manual, manualCounter(e, cat))
		return
	case KindUnknown:
		r.anomaly(AnomalyUnknownCategory, SourceExtra, e.EntryID, e.Category)
		return
	}

	if e.Date.IsZero() {
		r.anomaly(AnomalyInvalidDate, SourceExtra, e.EntryID, "lançamento sem data")
		return
	}
	date := model.Day(e.Date)
	key := dayKey{member: e.MemberID, date: date.Format(model.DateLayout), typ: TypeDiverse}
	if i, exists := r.index[key]; exists && r.entries[i].Source == SourceShift {
		return
	}

	holiday := r.holidays[key.date]
	total := e.TotalHours()
	win := DefaultWindow(TypeDiverse, date, holiday)

	r.append(key, Entry{
		MemberID: e.MemberID,
		Date:     date,
		Type:     TypeDiverse,
		Location: locationFromDescription(e.Description, cat),
		Start:    win.Start,
		End:      win.End,
		Hours: ComputeHours(DurationInput{
			Type:     TypeDiverse,
			Date:     date,
			Explicit: &total,
			Holiday:  holiday,
		}),
		Holiday:  holiday,
		Source:   SourceExtra,
		SourceID: e.EntryID,
	})
}

func manualCounter(e *model.ExtraHourEntry, cat Category) ManualCounter {
	mc := ManualCounter{EntryID: e.EntryID, MemberID: e.MemberID, Category: cat}

	switch {
	case cat.Kind == KindManualInternship:
		mc.Hours = e.TotalHours()
		if mc.Hours <= 0 {
			mc.Hours = float64(cat.Tier)
		}
		mc.Units = int(mc.Hours/float64(cat.Tier) + 0.5)
		if mc.Units < 1 {
			mc.Units = 1
		}
	case cat.DutyType.QuantityBased():
		// nos contadores de serviço por ocorrência o campo de horas guarda a quantidade
		mc.Units = e.Hours
		if mc.Units <= 0 {
			mc.Units = 1
		}
	default:
		mc.Hours = e.TotalHours()
	}
	return mc
}

// locationFromDescription remove o prefixo fixo ("<categoria> - " ou o rótulo do serviço)
// e usa o restante como local
func locationFromDescription(desc string, cat Category) string {
	s := strings.TrimSpace(desc)
	for _, prefix := range []string{cat.String(), string(TypeDiverse), "Serviço Diverso", "Diversos"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimLeft(s[len(prefix):], " -:–")
			break
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Unspecified
	}
	return s
}

func displayWindow(start, end string, def Window) Window {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return def
	}
	return Window{Start: start, End: end}
}

func (r *reconciler) append(key dayKey, e Entry) {
	if m, ok := r.members[e.MemberID]; ok {
		e.Known = true
		e.MemberName = m.Name
		e.seniority = m.Seniority
	} else {
		r.anomaly(AnomalyOrphanMember, e.Source, e.SourceID, "militar "+e.MemberID+" fora do efetivo")
	}
	if _, exists := r.index[key]; !exists {
		r.index[key] = len(r.entries)
	}
	r.entries = append(r.entries, e)
}

func (r *reconciler) anomaly(kind string, src Source, id, detail string) {
	r.anomalies = append(r.anomalies, Anomaly{Kind: kind, Source: src, RecordID: id, Detail: detail})
}

// ── etapa 5: ordenação estável ──

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if pa, pb := a.Type.Priority(), b.Type.Priority(); pa != pb {
			return pa < pb
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if c := compareSeniority(a.seniority, b.seniority); c != 0 {
			return c < 0
		}
		if na, nb := strings.ToLower(a.MemberName), strings.ToLower(b.MemberName); na != nb {
			return na < nb
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.MemberID != b.MemberID {
			return a.MemberID < b.MemberID
		}
		if a.Source != b.Source {
			return a.Source.rank() < b.Source.rank()
		}
		return a.SourceID < b.SourceID
	})
}

// nulo = menos antigo
func compareSeniority(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
