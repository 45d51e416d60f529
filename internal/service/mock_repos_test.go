package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
)

// ── filtro comum ──

func matches(f repository.ListFilter, memberID string, date time.Time) bool {
	if f.MemberID != "" && memberID != f.MemberID {
		return false
	}
	if !f.From.IsZero() && date.Before(model.Day(f.From)) {
		return false
	}
	if !f.To.IsZero() && date.After(model.Day(f.To)) {
		return false
	}
	return true
}

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.ServiceMember
	order   []string
	seq     int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.ServiceMember)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.ServiceMember) error {
	if member.MemberID == "" {
		m.seq++
		member.MemberID = fmt.Sprintf("mil-%d", m.seq)
	}
	cp := *member
	m.members[member.MemberID] = &cp
	m.order = append(m.order, member.MemberID)
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.ServiceMember, error) {
	if member, ok := m.members[id]; ok {
		cp := *member
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByServiceNumber(_ context.Context, number string) (*model.ServiceMember, error) {
	for _, id := range m.order {
		if member, ok := m.members[id]; ok && member.ServiceNumber == number {
			cp := *member
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) List(_ context.Context) ([]model.ServiceMember, error) {
	var result []model.ServiceMember
	for _, id := range m.order {
		if member, ok := m.members[id]; ok {
			result = append(result, *member)
		}
	}
	return result, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.ServiceMember) error {
	if _, ok := m.members[member.MemberID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *member
	m.members[member.MemberID] = &cp
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members, id)
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
	order    []string
	seq      int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, h *model.Holiday) error {
	if h.HolidayID == "" {
		m.seq++
		h.HolidayID = fmt.Sprintf("fer-%d", m.seq)
	}
	h.Date = model.Day(h.Date)
	cp := *h
	m.holidays[h.HolidayID] = &cp
	m.order = append(m.order, h.HolidayID)
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context, f repository.ListFilter) ([]model.Holiday, error) {
	f.MemberID = ""
	var result []model.Holiday
	for _, id := range m.order {
		if h, ok := m.holidays[id]; ok && matches(f, "", h.Date) {
			result = append(result, *h)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, h *model.Holiday) error {
	if _, ok := m.holidays[h.HolidayID]; !ok {
		return gorm.ErrRecordNotFound
	}
	h.Date = model.Day(h.Date)
	cp := *h
	m.holidays[h.HolidayID] = &cp
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.holidays[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.holidays, id)
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts     map[string]*model.ShiftAssignment
	order      []string
	seq        int
	replaceErr error // simula falha da transação em ReplaceDays
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.ShiftAssignment)}
}

func (m *mockShiftRepo) Create(_ context.Context, s *model.ShiftAssignment) error {
	if s.ShiftID == "" {
		m.seq++
		s.ShiftID = fmt.Sprintf("esc-%d", m.seq)
	}
	s.Date = model.Day(s.Date)
	cp := *s
	m.shifts[s.ShiftID] = &cp
	m.order = append(m.order, s.ShiftID)
	return nil
}

func (m *mockShiftRepo) BatchCreate(ctx context.Context, shifts []model.ShiftAssignment) error {
	for i := range shifts {
		if err := m.Create(ctx, &shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.ShiftAssignment, error) {
	if s, ok := m.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, f repository.ListFilter) ([]model.ShiftAssignment, error) {
	var result []model.ShiftAssignment
	for _, id := range m.order {
		if s, ok := m.shifts[id]; ok && matches(f, s.MemberID, s.Date) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, s *model.ShiftAssignment) error {
	if _, ok := m.shifts[s.ShiftID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.Date = model.Day(s.Date)
	cp := *s
	m.shifts[s.ShiftID] = &cp
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.shifts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) DeleteByDates(_ context.Context, dates []time.Time) (int64, error) {
	set := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		set[model.Day(d)] = true
	}
	var removed int64
	for id, s := range m.shifts {
		if set[s.Date] {
			delete(m.shifts, id)
			removed++
		}
	}
	return removed, nil
}

func (m *mockShiftRepo) ReplaceDays(ctx context.Context, dates []time.Time, shifts []model.ShiftAssignment) (int64, error) {
	if m.replaceErr != nil {
		return 0, m.replaceErr
	}
	removed, _ := m.DeleteByDates(ctx, dates)
	return removed, m.BatchCreate(ctx, shifts)
}

// ── Mock StageRepository ──

type mockStageRepo struct {
	stages    map[string]*model.StageAssignment
	order     []string
	seq       int
	createErr error // simula falha de gravação (ex.: sincronização da escala)
}

func newMockStageRepo() *mockStageRepo {
	return &mockStageRepo{stages: make(map[string]*model.StageAssignment)}
}

func (m *mockStageRepo) Create(_ context.Context, s *model.StageAssignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if s.StageID == "" {
		m.seq++
		s.StageID = fmt.Sprintf("est-%d", m.seq)
	}
	s.Date = model.Day(s.Date)
	cp := *s
	m.stages[s.StageID] = &cp
	m.order = append(m.order, s.StageID)
	return nil
}

func (m *mockStageRepo) GetByID(_ context.Context, id string) (*model.StageAssignment, error) {
	if s, ok := m.stages[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) GetByMemberAndDate(_ context.Context, memberID string, date time.Time) (*model.StageAssignment, error) {
	for _, id := range m.order {
		if s, ok := m.stages[id]; ok && s.MemberID == memberID && s.Date.Equal(model.Day(date)) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) List(_ context.Context, f repository.ListFilter) ([]model.StageAssignment, error) {
	var result []model.StageAssignment
	for _, id := range m.order {
		if s, ok := m.stages[id]; ok && matches(f, s.MemberID, s.Date) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStageRepo) Update(_ context.Context, s *model.StageAssignment) error {
	if _, ok := m.stages[s.StageID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.Date = model.Day(s.Date)
	cp := *s
	m.stages[s.StageID] = &cp
	return nil
}

func (m *mockStageRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.stages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.stages, id)
	return nil
}

// ── Mock ExtraHourRepository ──

type mockExtraHourRepo struct {
	entries map[string]*model.ExtraHourEntry
	order   []string
	seq     int
	listErr error
}

func newMockExtraHourRepo() *mockExtraHourRepo {
	return &mockExtraHourRepo{entries: make(map[string]*model.ExtraHourEntry)}
}

func (m *mockExtraHourRepo) Create(_ context.Context, e *model.ExtraHourEntry) error {
	if e.EntryID == "" {
		m.seq++
		e.EntryID = fmt.Sprintf("lan-%d", m.seq)
	}
	e.Date = model.Day(e.Date)
	cp := *e
	m.entries[e.EntryID] = &cp
	m.order = append(m.order, e.EntryID)
	return nil
}

func (m *mockExtraHourRepo) GetByID(_ context.Context, id string) (*model.ExtraHourEntry, error) {
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExtraHourRepo) List(_ context.Context, f repository.ListFilter) ([]model.ExtraHourEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.ExtraHourEntry
	for _, id := range m.order {
		if e, ok := m.entries[id]; ok && matches(f, e.MemberID, e.Date) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExtraHourRepo) Update(_ context.Context, e *model.ExtraHourEntry) error {
	if _, ok := m.entries[e.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	e.Date = model.Day(e.Date)
	cp := *e
	m.entries[e.EntryID] = &cp
	return nil
}

func (m *mockExtraHourRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

// ── agregador de mocks ──

type mockRepos struct {
	member    *mockMemberRepo
	holiday   *mockHolidayRepo
	shift     *mockShiftRepo
	stage     *mockStageRepo
	extraHour *mockExtraHourRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		member:    newMockMemberRepo(),
		holiday:   newMockHolidayRepo(),
		shift:     newMockShiftRepo(),
		stage:     newMockStageRepo(),
		extraHour: newMockExtraHourRepo(),
	}
	repo := &repository.Repository{
		Member:    m.member,
		Holiday:   m.holiday,
		Shift:     m.shift,
		Stage:     m.stage,
		ExtraHour: m.extraHour,
	}
	return repo, m
}

// seedMember cadastra um militar direto no mock
func (m *mockRepos) seedMember(id, name, number string, seniority *int) {
	_ = m.member.Create(context.Background(), &model.ServiceMember{
		MemberID:      id,
		Name:          name,
		Rank:          "Cad",
		ServiceNumber: number,
		Seniority:     seniority,
	})
}
