package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

// ── erros do efetivo ──

var (
	ErrMemberNotFound     = errors.New("militar não encontrado")
	ErrServiceNumberInUse = errors.New("matrícula já cadastrada")
)

// MemberService cadastro do efetivo
type MemberService interface {
	Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MemberResponse, error)
	List(ctx context.Context) ([]dto.MemberResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMemberService cria MemberService
func NewMemberService(repo *repository.Repository, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, logger: logger}
}

func (s *memberService) Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	name := strings.TrimSpace(req.Name)
	number := strings.TrimSpace(req.ServiceNumber)
	if name == "" {
		return nil, pkgerrors.NewValidation("name", "nome obrigatório")
	}
	if number == "" {
		return nil, pkgerrors.NewValidation("service_number", "matrícula obrigatória")
	}
	if err := s.ensureNumberFree(ctx, number, ""); err != nil {
		return nil, err
	}

	m := &model.ServiceMember{
		Name:          name,
		Rank:          strings.TrimSpace(req.Rank),
		ServiceNumber: number,
		Seniority:     req.Seniority,
		Unit:          strings.TrimSpace(req.Unit),
	}
	if err := s.repo.Member.Create(ctx, m); err != nil {
		s.logger.Error("falha ao cadastrar militar", zap.String("service_number", number), zap.Error(err))
		return nil, err
	}

	resp := dto.NewMemberResponse(m)
	return &resp, nil
}

func (s *memberService) GetByID(ctx context.Context, id string) (*dto.MemberResponse, error) {
	m, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("falha ao consultar militar", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := dto.NewMemberResponse(m)
	return &resp, nil
}

func (s *memberService) List(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.repo.Member.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar efetivo", zap.Error(err))
		return nil, err
	}
	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, dto.NewMemberResponse(&members[i]))
	}
	return result, nil
}

func (s *memberService) Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	m, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, pkgerrors.NewValidation("name", "nome obrigatório")
		}
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Rank != nil {
		m.Rank = strings.TrimSpace(*req.Rank)
	}
	if req.ServiceNumber != nil {
		number := strings.TrimSpace(*req.ServiceNumber)
		if number == "" {
			return nil, pkgerrors.NewValidation("service_number", "matrícula obrigatória")
		}
		if err := s.ensureNumberFree(ctx, number, id); err != nil {
			return nil, err
		}
		m.ServiceNumber = number
	}
	if req.Seniority != nil {
		m.Seniority = req.Seniority
	}
	if req.Unit != nil {
		m.Unit = strings.TrimSpace(*req.Unit)
	}

	if err := s.repo.Member.Update(ctx, m); err != nil {
		s.logger.Error("falha ao atualizar militar", zap.String("id", id), zap.Error(err))
		return nil, notFound(err, ErrMemberNotFound)
	}
	resp := dto.NewMemberResponse(m)
	return &resp, nil
}

// Delete não apaga os lançamentos do militar; eles passam a aparecer como órfãos na linha do tempo
func (s *memberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Member.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("falha ao remover militar", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *memberService) ensureNumberFree(ctx context.Context, number, selfID string) error {
	existing, err := s.repo.Member.GetByServiceNumber(ctx, number)
	switch {
	case err == nil && existing.MemberID != selfID:
		return ErrServiceNumberInUse
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("falha ao verificar matrícula", zap.String("service_number", number), zap.Error(err))
		return err
	}
}
