package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// Repository agregador de todos os repositórios (armazenamento das escalas)
type Repository struct {
	Member    MemberRepository
	Holiday   HolidayRepository
	Shift     ShiftRepository
	Stage     StageRepository
	ExtraHour ExtraHourRepository
}

// NewRepository cria o agregador
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Member:    NewMemberRepo(db),
		Holiday:   NewHolidayRepo(db),
		Shift:     NewShiftRepo(db),
		Stage:     NewStageRepo(db),
		ExtraHour: NewExtraHourRepo(db),
	}
}

// ListFilter filtro das listagens; campos zero não filtram
type ListFilter struct {
	MemberID string
	From     time.Time // inclusive
	To       time.Time // inclusive
}

func (f ListFilter) apply(db *gorm.DB) *gorm.DB {
	if f.MemberID != "" {
		db = db.Where("member_id = ?", f.MemberID)
	}
	if !f.From.IsZero() {
		db = db.Where("date >= ?", model.Day(f.From))
	}
	if !f.To.IsZero() {
		db = db.Where("date <= ?", model.Day(f.To))
	}
	return db
}

func days(dates []time.Time) []time.Time {
	out := make([]time.Time, 0, len(dates))
	seen := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		d = model.Day(d)
		if d.IsZero() || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// updateByID executa Updates e trata nenhuma linha afetada como registro inexistente
func updateByID(db *gorm.DB, value interface{}, column, id string, fields map[string]interface{}) error {
	result := db.Model(value).Where(column+" = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(db *gorm.DB, value interface{}, column, id string) error {
	result := db.Where(column+" = ?", id).Delete(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
