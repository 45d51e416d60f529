package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// StageRepository acesso aos estágios da tela dedicada
type StageRepository interface {
	Create(ctx context.Context, s *model.StageAssignment) error
	GetByID(ctx context.Context, id string) (*model.StageAssignment, error)
	GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.StageAssignment, error)
	List(ctx context.Context, f ListFilter) ([]model.StageAssignment, error)
	Update(ctx context.Context, s *model.StageAssignment) error
	Delete(ctx context.Context, id string) error
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo cria StageRepository
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, s *model.StageAssignment) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *stageRepo) GetByID(ctx context.Context, id string) (*model.StageAssignment, error) {
	var s model.StageAssignment
	if err := r.db.WithContext(ctx).Where("stage_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stageRepo) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.StageAssignment, error) {
	var s model.StageAssignment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, model.Day(date)).
		Order("created_at ASC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stageRepo) List(ctx context.Context, f ListFilter) ([]model.StageAssignment, error) {
	var stages []model.StageAssignment
	err := f.apply(r.db.WithContext(ctx)).
		Order("date ASC, created_at ASC, stage_id ASC").
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Update(ctx context.Context, s *model.StageAssignment) error {
	return updateByID(r.db.WithContext(ctx), &model.StageAssignment{}, "stage_id", s.StageID, map[string]interface{}{
		"member_id":         s.MemberID,
		"date":              model.Day(s.Date),
		"location":          s.Location,
		"start_time":        s.StartTime,
		"end_time":          s.EndTime,
		"explicit_duration": s.ExplicitDuration,
	})
}

func (r *stageRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.StageAssignment{}, "stage_id", id)
}
