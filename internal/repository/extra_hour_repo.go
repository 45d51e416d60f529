package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// ExtraHourRepository acesso ao livro de horas
type ExtraHourRepository interface {
	Create(ctx context.Context, e *model.ExtraHourEntry) error
	GetByID(ctx context.Context, id string) (*model.ExtraHourEntry, error)
	List(ctx context.Context, f ListFilter) ([]model.ExtraHourEntry, error)
	Update(ctx context.Context, e *model.ExtraHourEntry) error
	Delete(ctx context.Context, id string) error
}

type extraHourRepo struct {
	db *gorm.DB
}

// NewExtraHourRepo cria ExtraHourRepository
func NewExtraHourRepo(db *gorm.DB) ExtraHourRepository {
	return &extraHourRepo{db: db}
}

func (r *extraHourRepo) Create(ctx context.Context, e *model.ExtraHourEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *extraHourRepo) GetByID(ctx context.Context, id string) (*model.ExtraHourEntry, error) {
	var e model.ExtraHourEntry
	if err := r.db.WithContext(ctx).Where("entry_id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *extraHourRepo) List(ctx context.Context, f ListFilter) ([]model.ExtraHourEntry, error) {
	var entries []model.ExtraHourEntry
	err := f.apply(r.db.WithContext(ctx)).
		Order("date ASC, created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *extraHourRepo) Update(ctx context.Context, e *model.ExtraHourEntry) error {
	return updateByID(r.db.WithContext(ctx), &model.ExtraHourEntry{}, "entry_id", e.EntryID, map[string]interface{}{
		"member_id":   e.MemberID,
		"date":        model.Day(e.Date),
		"category":    e.Category,
		"hours":       e.Hours,
		"minutes":     e.Minutes,
		"description": e.Description,
	})
}

func (r *extraHourRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.ExtraHourEntry{}, "entry_id", id)
}
