package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

// ReportService visões derivadas da linha do tempo unificada
//
// Cada chamada lê as cinco coleções do armazenamento e recalcula tudo do zero.
// Não há cache entre chamadas: a próxima leitura depois de uma gravação já reflete a mudança.
type ReportService interface {
	Snapshot(ctx context.Context) (duty.Snapshot, error)
	Timeline(ctx context.Context, q *dto.RangeQuery) (*dto.TimelineResponse, error)
	Calendar(ctx context.Context, q *dto.RangeQuery) ([]duty.CalendarDay, error)
	Workload(ctx context.Context, memberID string) (*duty.Workload, error)
	Workloads(ctx context.Context) ([]duty.Workload, error)
	Ranking(ctx context.Context, q *dto.RankingQuery) ([]duty.RankingRow, error)
	Matrix(ctx context.Context, q *dto.MatrixQuery) (*duty.Matrix, error)
	Consolidated(ctx context.Context, q *dto.ConsolidatedQuery) ([]duty.ConsolidatedRow, error)
	Catalog() dto.CatalogResponse
}

type reportService struct {
	repo      *repository.Repository
	locations *duty.LocationCatalog
	program   string
	logger    *zap.Logger
}

// NewReportService cria ReportService
func NewReportService(repo *repository.Repository, locations *duty.LocationCatalog, program string, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, locations: locations, program: program, logger: logger}
}

// Snapshot lê as coleções completas
func (s *reportService) Snapshot(ctx context.Context) (duty.Snapshot, error) {
	var snap duty.Snapshot
	var err error
	all := repository.ListFilter{}

	if snap.Members, err = s.repo.Member.List(ctx); err != nil {
		s.logger.Error("falha ao carregar efetivo", zap.Error(err))
		return snap, err
	}
	if snap.Shifts, err = s.repo.Shift.List(ctx, all); err != nil {
		s.logger.Error("falha ao carregar escalas", zap.Error(err))
		return snap, err
	}
	if snap.Stages, err = s.repo.Stage.List(ctx, all); err != nil {
		s.logger.Error("falha ao carregar estágios", zap.Error(err))
		return snap, err
	}
	if snap.Extras, err = s.repo.ExtraHour.List(ctx, all); err != nil {
		s.logger.Error("falha ao carregar livro de horas", zap.Error(err))
		return snap, err
	}
	if snap.Holidays, err = s.repo.Holiday.List(ctx, all); err != nil {
		s.logger.Error("falha ao carregar feriados", zap.Error(err))
		return snap, err
	}
	return snap, nil
}

// load snapshot + reconciliação; anomalias vão para o log e nunca interrompem
func (s *reportService) load(ctx context.Context) (duty.Timeline, []model.ServiceMember, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return duty.Timeline{}, nil, err
	}
	tl := duty.Reconcile(snap)
	for _, a := range tl.Anomalies {
		s.logger.Warn("inconsistência na reconciliação",
			zap.String("kind", a.Kind),
			zap.String("source", string(a.Source)),
			zap.String("record_id", a.RecordID),
			zap.String("detail", a.Detail),
		)
	}
	return tl, snap.Members, nil
}

func (s *reportService) Timeline(ctx context.Context, q *dto.RangeQuery) (*dto.TimelineResponse, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	tl, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	tl = tl.Filter(func(e duty.Entry) bool {
		if q.MemberID != "" && e.MemberID != q.MemberID {
			return false
		}
		if !from.IsZero() && e.Date.Before(from) {
			return false
		}
		return to.IsZero() || !e.Date.After(to)
	})

	resp := &dto.TimelineResponse{
		Entries:   nonNilEntries(tl.Entries),
		Manual:    make([]duty.ManualCounter, 0, len(tl.Manual)),
		Anomalies: tl.Anomalies,
	}
	for _, mc := range tl.Manual {
		if q.MemberID == "" || mc.MemberID == q.MemberID {
			resp.Manual = append(resp.Manual, mc)
		}
	}
	if resp.Anomalies == nil {
		resp.Anomalies = []duty.Anomaly{}
	}
	return resp, nil
}

func (s *reportService) Calendar(ctx context.Context, q *dto.RangeQuery) ([]duty.CalendarDay, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	tl, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if q.MemberID != "" {
		tl = tl.Filter(func(e duty.Entry) bool { return e.MemberID == q.MemberID })
	}
	return duty.CalendarDays(tl, from, to), nil
}

func (s *reportService) Workload(ctx context.Context, memberID string) (*duty.Workload, error) {
	tl, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.MemberID == memberID {
			w := duty.MemberWorkload(tl, m)
			return &w, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (s *reportService) Workloads(ctx context.Context) ([]duty.Workload, error) {
	tl, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]duty.Workload, 0, len(members))
	for _, m := range members {
		result = append(result, duty.MemberWorkload(tl, m))
	}
	return result, nil
}

func (s *reportService) Ranking(ctx context.Context, q *dto.RankingQuery) ([]duty.RankingRow, error) {
	filter := duty.RankingFilter{ExcludeManual: q.ExcludeManual}
	for _, raw := range q.Types {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, ok := duty.ParseType(raw)
		if !ok {
			return nil, pkgerrors.NewValidation("type", "tipo de serviço desconhecido: "+raw)
		}
		if t.QuantityBased() {
			return nil, pkgerrors.NewValidation("type", string(t)+" é contado por ocorrência, use o relatório consolidado")
		}
		filter.Types = append(filter.Types, t)
	}

	tl, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return duty.Ranking(tl, members, filter), nil
}

func (s *reportService) Matrix(ctx context.Context, q *dto.MatrixQuery) (*duty.Matrix, error) {
	for _, tier := range q.Tiers {
		if tier <= 0 || tier > 48 {
			return nil, pkgerrors.NewValidation("tier", "faixa deve estar entre 1 e 48 horas")
		}
	}
	tl, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	m := duty.LocationMatrix(tl, members, s.locations, q.Tiers)
	return &m, nil
}

func (s *reportService) Consolidated(ctx context.Context, q *dto.ConsolidatedQuery) ([]duty.ConsolidatedRow, error) {
	t, ok := duty.ParseType(q.Type)
	if !ok || !t.QuantityBased() {
		return nil, pkgerrors.NewValidation("type", "informe Sobreaviso, Faxina, Manutenção ou Bar")
	}
	tl, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return duty.ConsolidatedCount(tl, members, t), nil
}

func (s *reportService) Catalog() dto.CatalogResponse {
	return dto.CatalogResponse{
		Types:     append([]duty.Type(nil), duty.Catalog...),
		Locations: s.locations.Labels(),
		Program:   s.program,
	}
}

func nonNilEntries(entries []duty.Entry) []duty.Entry {
	if entries == nil {
		return []duty.Entry{}
	}
	return entries
}
