package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

var (
	ErrStageNotFound = errors.New("estágio não encontrado")
	ErrStageExists   = errors.New("o militar já tem estágio registrado nesta data")
)

// StageService estágios da tela dedicada
type StageService interface {
	Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StageResponse, error)
	List(ctx context.Context, q *dto.RangeQuery) ([]dto.StageResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	Delete(ctx context.Context, id string) error
}

type stageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStageService cria StageService
func NewStageService(repo *repository.Repository, logger *zap.Logger) StageService {
	return &stageService{repo: repo, logger: logger}
}

func (s *stageService) Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return nil, pkgerrors.NewValidation("member_id", "selecione o militar")
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	start, end, err := requireTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := requireDuration(req.ExplicitDuration); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.repo, req.MemberID); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, req.MemberID, date, ""); err != nil {
		return nil, err
	}

	stage := &model.StageAssignment{
		MemberID:         req.MemberID,
		Date:             date,
		Location:         strings.TrimSpace(req.Location),
		StartTime:        start,
		EndTime:          end,
		ExplicitDuration: req.ExplicitDuration,
	}
	if err := s.repo.Stage.Create(ctx, stage); err != nil {
		s.logger.Error("falha ao gravar estágio", zap.String("member_id", req.MemberID), zap.Error(err))
		return nil, err
	}
	resp := dto.NewStageResponse(stage)
	return &resp, nil
}

func (s *stageService) GetByID(ctx context.Context, id string) (*dto.StageResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStageNotFound)
	}
	resp := dto.NewStageResponse(stage)
	return &resp, nil
}

func (s *stageService) List(ctx context.Context, q *dto.RangeQuery) ([]dto.StageResponse, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	stages, err := s.repo.Stage.List(ctx, repository.ListFilter{MemberID: q.MemberID, From: from, To: to})
	if err != nil {
		s.logger.Error("falha ao listar estágios", zap.Error(err))
		return nil, err
	}
	result := make([]dto.StageResponse, 0, len(stages))
	for i := range stages {
		result = append(result, dto.NewStageResponse(&stages[i]))
	}
	return result, nil
}

func (s *stageService) Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := s.repo.Stage.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStageNotFound)
	}

	if req.MemberID != nil {
		if err := requireMember(ctx, s.repo, *req.MemberID); err != nil {
			return nil, err
		}
		stage.MemberID = *req.MemberID
	}
	if req.Date != nil {
		d, err := requireDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		stage.Date = d
	}
	if req.Location != nil {
		stage.Location = strings.TrimSpace(*req.Location)
	}
	start, end := stage.StartTime, stage.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if stage.StartTime, stage.EndTime, err = requireTimes(start, end); err != nil {
		return nil, err
	}
	switch {
	case req.ClearDuration:
		stage.ExplicitDuration = nil
	case req.ExplicitDuration != nil:
		if err := requireDuration(req.ExplicitDuration); err != nil {
			return nil, err
		}
		stage.ExplicitDuration = req.ExplicitDuration
	}
	if req.MemberID != nil || req.Date != nil {
		if err := s.ensureFree(ctx, stage.MemberID, stage.Date, stage.StageID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Stage.Update(ctx, stage); err != nil {
		s.logger.Error("falha ao atualizar estágio", zap.String("id", id), zap.Error(err))
		return nil, notFound(err, ErrStageNotFound)
	}
	resp := dto.NewStageResponse(stage)
	return &resp, nil
}

func (s *stageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Stage.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao remover estágio", zap.String("id", id), zap.Error(err))
		}
		return notFound(err, ErrStageNotFound)
	}
	return nil
}

// ensureFree um estágio por militar por dia
func (s *stageService) ensureFree(ctx context.Context, memberID string, date time.Time, selfID string) error {
	existing, err := s.repo.Stage.GetByMemberAndDate(ctx, memberID, date)
	switch {
	case err == nil && existing.StageID != selfID:
		return ErrStageExists
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("falha ao verificar estágio existente", zap.String("member_id", memberID), zap.Error(err))
		return err
	}
}
