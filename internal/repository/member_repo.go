package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// MemberRepository acesso ao efetivo
type MemberRepository interface {
	Create(ctx context.Context, m *model.ServiceMember) error
	GetByID(ctx context.Context, id string) (*model.ServiceMember, error)
	GetByServiceNumber(ctx context.Context, number string) (*model.ServiceMember, error)
	List(ctx context.Context) ([]model.ServiceMember, error)
	Update(ctx context.Context, m *model.ServiceMember) error
	Delete(ctx context.Context, id string) error
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo cria MemberRepository
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, m *model.ServiceMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.ServiceMember, error) {
	var m model.ServiceMember
	if err := r.db.WithContext(ctx).Where("member_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) GetByServiceNumber(ctx context.Context, number string) (*model.ServiceMember, error) {
	var m model.ServiceMember
	if err := r.db.WithContext(ctx).Where("service_number = ?", number).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List ordem do efetivo: antiguidade (sem antiguidade por último), depois nome
func (r *memberRepo) List(ctx context.Context) ([]model.ServiceMember, error) {
	var members []model.ServiceMember
	err := r.db.WithContext(ctx).
		Order("seniority IS NULL, seniority ASC, name ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepo) Update(ctx context.Context, m *model.ServiceMember) error {
	return updateByID(r.db.WithContext(ctx), &model.ServiceMember{}, "member_id", m.MemberID, map[string]interface{}{
		"name":           m.Name,
		"rank":           m.Rank,
		"service_number": m.ServiceNumber,
		"seniority":      m.Seniority,
		"unit":           m.Unit,
	})
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.ServiceMember{}, "member_id", id)
}
