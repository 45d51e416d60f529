package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

var (
	ErrShiftNotFound = errors.New("escala não encontrada")
)

// ShiftService escala (todos os tipos de serviço)
type ShiftService interface {
	// Create grava a escala; com SyncStage em Estágio grava também o estágio correspondente.
	// Se o estágio falhar, a escala já está salva: retorna a resposta e um erro ErrPartialWrite.
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error)
	List(ctx context.Context, q *dto.RangeQuery) ([]dto.ShiftResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	// ReplaceDays sobrescreve dias inteiros: remove todas as escalas das datas e grava as novas
	ReplaceDays(ctx context.Context, req *dto.ReplaceDaysRequest) (*dto.ReplaceDaysResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService cria ShiftService
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.buildShift(req)
	if err != nil {
		return nil, err
	}
	if req.SyncStage && shift.DutyType != string(duty.TypeInternship) {
		return nil, pkgerrors.NewValidation("sync_stage", "sincronização só se aplica a escala de Estágio")
	}
	if err := requireMember(ctx, s.repo, shift.MemberID); err != nil {
		return nil, err
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("falha ao gravar escala",
			zap.String("member_id", shift.MemberID),
			zap.String("date", shift.Date.Format(model.DateLayout)),
			zap.Error(err),
		)
		return nil, err
	}
	resp := dto.NewShiftResponse(shift)

	if !req.SyncStage {
		return &resp, nil
	}

	stageID, err := s.syncStage(ctx, shift)
	if err != nil {
		s.logger.Error("escala gravada, mas o estágio não foi sincronizado",
			zap.String("shift_id", shift.ShiftID),
			zap.Error(err),
		)
		return &resp, fmt.Errorf("%w: %v", pkgerrors.ErrPartialWrite, err)
	}
	resp.StageID = stageID
	return &resp, nil
}

// syncStage grava o estágio da escala, a menos que já exista um para o militar no dia
func (s *shiftService) syncStage(ctx context.Context, shift *model.ShiftAssignment) (string, error) {
	existing, err := s.repo.Stage.GetByMemberAndDate(ctx, shift.MemberID, shift.Date)
	if err == nil {
		return existing.StageID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	stage := &model.StageAssignment{
		MemberID:         shift.MemberID,
		Date:             shift.Date,
		StartTime:        shift.StartTime,
		EndTime:          shift.EndTime,
		ExplicitDuration: shift.ExplicitDuration,
	}
	if shift.Location != nil {
		stage.Location = *shift.Location
	}
	if err := s.repo.Stage.Create(ctx, stage); err != nil {
		return "", err
	}
	return stage.StageID, nil
}

// ────────────────────── Leitura ──────────────────────

func (s *shiftService) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao consultar escala", zap.String("id", id), zap.Error(err))
		}
		return nil, notFound(err, ErrShiftNotFound)
	}
	resp := dto.NewShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) List(ctx context.Context, q *dto.RangeQuery) ([]dto.ShiftResponse, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	shifts, err := s.repo.Shift.List(ctx, repository.ListFilter{MemberID: q.MemberID, From: from, To: to})
	if err != nil {
		s.logger.Error("falha ao listar escalas", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, dto.NewShiftResponse(&shifts[i]))
	}
	return result, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *shiftService) Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrShiftNotFound)
	}

	if req.MemberID != nil {
		if err := requireMember(ctx, s.repo, *req.MemberID); err != nil {
			return nil, err
		}
		shift.MemberID = *req.MemberID
	}
	if req.Date != nil {
		d, err := requireDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		shift.Date = d
	}
	if req.DutyType != nil {
		if strings.TrimSpace(*req.DutyType) == "" {
			return nil, pkgerrors.NewValidation("duty_type", "tipo de serviço obrigatório")
		}
		shift.DutyType = canonicalType(*req.DutyType)
	}
	start, end := shift.StartTime, shift.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if shift.StartTime, shift.EndTime, err = requireTimes(start, end); err != nil {
		return nil, err
	}
	switch {
	case req.ClearLocation:
		shift.Location = nil
	case req.Location != nil:
		loc := strings.TrimSpace(*req.Location)
		shift.Location = &loc
	}
	if req.Status != nil {
		shift.Status = *req.Status
	}
	switch {
	case req.ClearDuration:
		shift.ExplicitDuration = nil
	case req.ExplicitDuration != nil:
		if err := requireDuration(req.ExplicitDuration); err != nil {
			return nil, err
		}
		shift.ExplicitDuration = req.ExplicitDuration
	}

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("falha ao atualizar escala", zap.String("id", id), zap.Error(err))
		return nil, notFound(err, ErrShiftNotFound)
	}
	resp := dto.NewShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Shift.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao remover escala", zap.String("id", id), zap.Error(err))
		}
		return notFound(err, ErrShiftNotFound)
	}
	return nil
}

// ────────────────────── ReplaceDays ──────────────────────

func (s *shiftService) ReplaceDays(ctx context.Context, req *dto.ReplaceDaysRequest) (*dto.ReplaceDaysResponse, error) {
	if len(req.Dates) == 0 {
		return nil, pkgerrors.NewValidation("dates", "informe ao menos uma data")
	}
	dates := make([]time.Time, 0, len(req.Dates))
	allowed := make(map[string]bool, len(req.Dates))
	for i, raw := range req.Dates {
		d, err := requireDate(fmt.Sprintf("dates[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
		allowed[d.Format(model.DateLayout)] = true
	}

	shifts := make([]model.ShiftAssignment, 0, len(req.Shifts))
	checked := make(map[string]bool)
	for i := range req.Shifts {
		shift, err := s.buildShift(&req.Shifts[i])
		if err != nil {
			var v *pkgerrors.ValidationError
			if errors.As(err, &v) {
				return nil, pkgerrors.NewValidation(fmt.Sprintf("shifts[%d].%s", i, v.Field), v.Message)
			}
			return nil, err
		}
		if !allowed[shift.Date.Format(model.DateLayout)] {
			return nil, pkgerrors.NewValidation(fmt.Sprintf("shifts[%d].date", i), "data fora dos dias sobrescritos")
		}
		if !checked[shift.MemberID] {
			if err := requireMember(ctx, s.repo, shift.MemberID); err != nil {
				return nil, err
			}
			checked[shift.MemberID] = true
		}
		shifts = append(shifts, *shift)
	}

	removed, err := s.repo.Shift.ReplaceDays(ctx, dates, shifts)
	if err != nil {
		s.logger.Error("falha ao sobrescrever dias da escala", zap.Int("dates", len(dates)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("dias da escala sobrescritos",
		zap.Int("dates", len(dates)),
		zap.Int64("removed", removed),
		zap.Int("created", len(shifts)),
	)

	resp := &dto.ReplaceDaysResponse{Removed: removed, Created: make([]dto.ShiftResponse, 0, len(shifts))}
	for i := range shifts {
		resp.Created = append(resp.Created, dto.NewShiftResponse(&shifts[i]))
	}
	return resp, nil
}

// buildShift valida o pedido (sem consultar o armazenamento) e monta o modelo
func (s *shiftService) buildShift(req *dto.CreateShiftRequest) (*model.ShiftAssignment, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return nil, pkgerrors.NewValidation("member_id", "selecione o militar")
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.DutyType) == "" {
		return nil, pkgerrors.NewValidation("duty_type", "tipo de serviço obrigatório")
	}
	start, end, err := requireTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := requireDuration(req.ExplicitDuration); err != nil {
		return nil, err
	}

	status := req.Status
	switch status {
	case "":
		status = model.ShiftStatusConfirmed
	case model.ShiftStatusConfirmed, model.ShiftStatusPending, model.ShiftStatusCompleted:
	default:
		return nil, pkgerrors.NewValidation("status", "status deve ser confirmed, pending ou completed")
	}
	shift := &model.ShiftAssignment{
		MemberID:         strings.TrimSpace(req.MemberID),
		Date:             date,
		DutyType:         canonicalType(req.DutyType),
		StartTime:        start,
		EndTime:          end,
		Status:           status,
		ExplicitDuration: req.ExplicitDuration,
	}
	if req.Location != nil {
		if loc := strings.TrimSpace(*req.Location); loc != "" {
			shift.Location = &loc
		}
	}
	return shift, nil
}
