package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// HolidayRepository acesso aos feriados
type HolidayRepository interface {
	Create(ctx context.Context, h *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	List(ctx context.Context, f ListFilter) ([]model.Holiday, error)
	Update(ctx context.Context, h *model.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo cria HolidayRepository
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var h model.Holiday
	if err := r.db.WithContext(ctx).Where("holiday_id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// List ignora MemberID do filtro
func (r *holidayRepo) List(ctx context.Context, f ListFilter) ([]model.Holiday, error) {
	f.MemberID = ""
	var holidays []model.Holiday
	err := f.apply(r.db.WithContext(ctx)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Update(ctx context.Context, h *model.Holiday) error {
	return updateByID(r.db.WithContext(ctx), &model.Holiday{}, "holiday_id", h.HolidayID, map[string]interface{}{
		"date":        model.Day(h.Date),
		"description": h.Description,
	})
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Holiday{}, "holiday_id", id)
}
