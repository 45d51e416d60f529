package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

var (
	ErrExtraHourNotFound = errors.New("lançamento não encontrado")
)

// ExtraHourService livro de horas
//
// A categoria decide o destino do lançamento:
//   - "<Curso> - Registro de Horas": serviço diverso datado, entra na linha do tempo
//   - "<Curso> - <Serviço>" e "<Curso> - Estágio - <Local> - <N>h": contadores manuais
//
// Categorias fora desses formatos são recusadas na gravação.
type ExtraHourService interface {
	Create(ctx context.Context, req *dto.CreateExtraHourRequest) (*dto.ExtraHourResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ExtraHourResponse, error)
	List(ctx context.Context, q *dto.RangeQuery) ([]dto.ExtraHourResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateExtraHourRequest) (*dto.ExtraHourResponse, error)
	Delete(ctx context.Context, id string) error
}

type extraHourService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExtraHourService cria ExtraHourService
func NewExtraHourService(repo *repository.Repository, logger *zap.Logger) ExtraHourService {
	return &extraHourService{repo: repo, logger: logger}
}

func (s *extraHourService) Create(ctx context.Context, req *dto.CreateExtraHourRequest) (*dto.ExtraHourResponse, error) {
	e := &model.ExtraHourEntry{
		MemberID:    strings.TrimSpace(req.MemberID),
		Category:    strings.TrimSpace(req.Category),
		Hours:       req.Hours,
		Minutes:     req.Minutes,
		Description: strings.TrimSpace(req.Description),
	}
	if e.MemberID == "" {
		return nil, pkgerrors.NewValidation("member_id", "selecione o militar")
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	e.Date = date
	if err := validateEntry(e); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.repo, e.MemberID); err != nil {
		return nil, err
	}

	if err := s.repo.ExtraHour.Create(ctx, e); err != nil {
		s.logger.Error("falha ao gravar lançamento", zap.String("member_id", e.MemberID), zap.Error(err))
		return nil, err
	}
	resp := dto.NewExtraHourResponse(e)
	return &resp, nil
}

func (s *extraHourService) GetByID(ctx context.Context, id string) (*dto.ExtraHourResponse, error) {
	e, err := s.repo.ExtraHour.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrExtraHourNotFound)
	}
	resp := dto.NewExtraHourResponse(e)
	return &resp, nil
}

func (s *extraHourService) List(ctx context.Context, q *dto.RangeQuery) ([]dto.ExtraHourResponse, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	entries, err := s.repo.ExtraHour.List(ctx, repository.ListFilter{MemberID: q.MemberID, From: from, To: to})
	if err != nil {
		s.logger.Error("falha ao listar lançamentos", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ExtraHourResponse, 0, len(entries))
	for i := range entries {
		result = append(result, dto.NewExtraHourResponse(&entries[i]))
	}
	return result, nil
}

func (s *extraHourService) Update(ctx context.Context, id string, req *dto.UpdateExtraHourRequest) (*dto.ExtraHourResponse, error) {
	e, err := s.repo.ExtraHour.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrExtraHourNotFound)
	}

	if req.MemberID != nil {
		if err := requireMember(ctx, s.repo, *req.MemberID); err != nil {
			return nil, err
		}
		e.MemberID = *req.MemberID
	}
	if req.Date != nil {
		d, err := requireDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}
	if req.Category != nil {
		e.Category = strings.TrimSpace(*req.Category)
	}
	if req.Hours != nil {
		e.Hours = *req.Hours
	}
	if req.Minutes != nil {
		e.Minutes = *req.Minutes
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if err := validateEntry(e); err != nil {
		return nil, err
	}

	if err := s.repo.ExtraHour.Update(ctx, e); err != nil {
		s.logger.Error("falha ao atualizar lançamento", zap.String("id", id), zap.Error(err))
		return nil, notFound(err, ErrExtraHourNotFound)
	}
	resp := dto.NewExtraHourResponse(e)
	return &resp, nil
}

func (s *extraHourService) Delete(ctx context.Context, id string) error {
	if err := s.repo.ExtraHour.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao remover lançamento", zap.String("id", id), zap.Error(err))
		}
		return notFound(err, ErrExtraHourNotFound)
	}
	return nil
}

func validateEntry(e *model.ExtraHourEntry) error {
	if e.Category == "" {
		return pkgerrors.NewValidation("category", "categoria obrigatória")
	}
	if e.Hours < 0 {
		return pkgerrors.NewValidation("hours", "horas não podem ser negativas")
	}
	if e.Minutes < 0 || e.Minutes > 59 {
		return pkgerrors.NewValidation("minutes", "minutos devem estar entre 0 e 59")
	}

	cat := duty.ParseCategory(e.Category)
	switch cat.Kind {
	case duty.KindUnknown:
		return pkgerrors.NewValidation("category", "categoria fora dos formatos do livro de horas")
	case duty.KindManualTally:
		if cat.DutyType == "" {
			return pkgerrors.NewValidation("category", "tipo de serviço desconhecido: "+cat.DutyLabel)
		}
	case duty.KindHourLog:
		if e.TotalHours() <= 0 {
			return pkgerrors.NewValidation("hours", "informe a duração do serviço")
		}
	}
	e.Category = cat.String()
	return nil
}
