package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// ShiftRepository acesso à escala
type ShiftRepository interface {
	Create(ctx context.Context, s *model.ShiftAssignment) error
	BatchCreate(ctx context.Context, shifts []model.ShiftAssignment) error
	GetByID(ctx context.Context, id string) (*model.ShiftAssignment, error)
	List(ctx context.Context, f ListFilter) ([]model.ShiftAssignment, error)
	Update(ctx context.Context, s *model.ShiftAssignment) error
	Delete(ctx context.Context, id string) error
	// DeleteByDates remove todas as escalas das datas informadas
	DeleteByDates(ctx context.Context, dates []time.Time) (int64, error)
	// ReplaceDays DeleteByDates + BatchCreate numa transação
	ReplaceDays(ctx context.Context, dates []time.Time, shifts []model.ShiftAssignment) (int64, error)
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo cria ShiftRepository
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, s *model.ShiftAssignment) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) BatchCreate(ctx context.Context, shifts []model.ShiftAssignment) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	var s model.ShiftAssignment
	if err := r.db.WithContext(ctx).Where("shift_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) List(ctx context.Context, f ListFilter) ([]model.ShiftAssignment, error) {
	var shifts []model.ShiftAssignment
	err := f.apply(r.db.WithContext(ctx)).
		Order("date ASC, created_at ASC, shift_id ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, s *model.ShiftAssignment) error {
	return updateByID(r.db.WithContext(ctx), &model.ShiftAssignment{}, "shift_id", s.ShiftID, map[string]interface{}{
		"member_id":         s.MemberID,
		"date":              model.Day(s.Date),
		"duty_type":         s.DutyType,
		"start_time":        s.StartTime,
		"end_time":          s.EndTime,
		"location":          s.Location,
		"status":            s.Status,
		"explicit_duration": s.ExplicitDuration,
	})
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.ShiftAssignment{}, "shift_id", id)
}

func (r *shiftRepo) DeleteByDates(ctx context.Context, dates []time.Time) (int64, error) {
	return deleteShiftsByDates(r.db.WithContext(ctx), dates)
}

func (r *shiftRepo) ReplaceDays(ctx context.Context, dates []time.Time, shifts []model.ShiftAssignment) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteShiftsByDates(tx, dates)
		if err != nil {
			return err
		}
		removed = n
		if len(shifts) == 0 {
			return nil
		}
		return tx.Create(&shifts).Error
	})
	return removed, err
}

func deleteShiftsByDates(db *gorm.DB, dates []time.Time) (int64, error) {
	set := days(dates)
	if len(set) == 0 {
		return 0, nil
	}
	result := db.Where("date IN ?", set).Delete(&model.ShiftAssignment{})
	return result.RowsAffected, result.Error
}
