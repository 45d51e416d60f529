package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout formato ISO de data civil usado em todo o sistema
const DateLayout = "2006-01-02"

// BaseModel campos de auditoria embutidos em todos os modelos
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Day trunca t para a meia-noite UTC da mesma data civil
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay interpreta "2006-01-02"
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All modelos persistidos (AutoMigrate do sqlite)
func All() []interface{} {
	return []interface{}{
		&ServiceMember{},
		&Holiday{},
		&ShiftAssignment{},
		&StageAssignment{},
		&ExtraHourEntry{},
	}
}
