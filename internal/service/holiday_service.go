package service

import (
	"context"
	"errors"
	"io"
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
	ErrHolidayNotFound = errors.New("feriado não encontrado")
)

// HolidayService feriados
// Datas repetidas são aceitas (o cálculo só precisa saber se o dia é feriado) e geram aviso no log.
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	GetByID(ctx context.Context, id string) (*dto.HolidayResponse, error)
	List(ctx context.Context, q *dto.RangeQuery) ([]dto.HolidayResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// ImportICS cadastra os eventos de um calendário .ics como feriados; dias já cadastrados são ignorados
	ImportICS(ctx context.Context, r io.Reader) ([]dto.HolidayResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewHolidayService cria HolidayService; loc é o fuso usado para converter eventos com horário
func NewHolidayService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) HolidayService {
	if loc == nil {
		loc = time.UTC
	}
	return &holidayService{repo: repo, loc: loc, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	s.warnIfTaken(ctx, date)
	h := &model.Holiday{Date: date, Description: strings.TrimSpace(req.Description)}
	if err := s.repo.Holiday.Create(ctx, h); err != nil {
		s.logger.Error("falha ao cadastrar feriado", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}
	resp := dto.NewHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) GetByID(ctx context.Context, id string) (*dto.HolidayResponse, error) {
	h, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrHolidayNotFound)
	}
	resp := dto.NewHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) List(ctx context.Context, q *dto.RangeQuery) ([]dto.HolidayResponse, error) {
	from, to, err := q.Bounds()
	if err != nil {
		return nil, pkgerrors.NewValidation("from/to", "data inválida, use AAAA-MM-DD")
	}
	holidays, err := s.repo.Holiday.List(ctx, repository.ListFilter{From: from, To: to})
	if err != nil {
		s.logger.Error("falha ao listar feriados", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, dto.NewHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error) {
	h, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrHolidayNotFound)
	}
	if req.Date != nil {
		date, err := requireDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		h.Date = date
	}
	if req.Description != nil {
		h.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.repo.Holiday.Update(ctx, h); err != nil {
		s.logger.Error("falha ao atualizar feriado", zap.String("id", id), zap.Error(err))
		return nil, notFound(err, ErrHolidayNotFound)
	}
	resp := dto.NewHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao remover feriado", zap.String("id", id), zap.Error(err))
		}
		return notFound(err, ErrHolidayNotFound)
	}
	return nil
}

func (s *holidayService) ImportICS(ctx context.Context, r io.Reader) ([]dto.HolidayResponse, error) {
	parsed, err := ParseHolidayICS(r, s.loc)
	if err != nil {
		return nil, pkgerrors.NewValidation("file", err.Error())
	}

	existing, err := s.repo.Holiday.List(ctx, repository.ListFilter{})
	if err != nil {
		s.logger.Error("falha ao listar feriados", zap.Error(err))
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, h := range existing {
		taken[h.Date.Format(model.DateLayout)] = true
	}

	created := make([]dto.HolidayResponse, 0, len(parsed))
	for i := range parsed {
		h := &parsed[i]
		key := h.Date.Format(model.DateLayout)
		if taken[key] {
			continue
		}
		if err := s.repo.Holiday.Create(ctx, h); err != nil {
			s.logger.Error("falha ao importar feriado", zap.String("date", key), zap.Int("imported", len(created)), zap.Error(err))
			return created, err
		}
		taken[key] = true
		created = append(created, dto.NewHolidayResponse(h))
	}

	s.logger.Info("feriados importados", zap.Int("events", len(parsed)), zap.Int("created", len(created)))
	return created, nil
}

func (s *holidayService) warnIfTaken(ctx context.Context, date time.Time) {
	same, err := s.repo.Holiday.List(ctx, repository.ListFilter{From: date, To: date})
	if err == nil && len(same) > 0 {
		s.logger.Warn("feriado repetido para a data", zap.String("date", date.Format(model.DateLayout)))
	}
}
