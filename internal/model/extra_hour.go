package model

import (
	"time"

	"gorm.io/gorm"
)

// ExtraHourEntry lançamento do livro de horas (tabela extra_hour_entries)
// Category pode ser estruturada, ex.: "CFO I - Sobreaviso", "CFO I - Estágio - 1°BBM - 24h".
type ExtraHourEntry struct {
	EntryID     string    `gorm:"primaryKey;size:36"            json:"entry_id"`
	MemberID    string    `gorm:"size:36;not null;index"        json:"member_id"`
	Date        time.Time `gorm:"type:date;not null"            json:"date"`
	Category    string    `gorm:"size:160;not null"             json:"category"`
	Hours       int       `gorm:"not null;default:0"            json:"hours"`
	Minutes     int       `gorm:"not null;default:0"            json:"minutes"` // 0-59
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	BaseModel
}

// TableName nome da tabela
func (ExtraHourEntry) TableName() string { return "extra_hour_entries" }

func (e *ExtraHourEntry) BeforeCreate(_ *gorm.DB) error {
	newID(&e.EntryID)
	return nil
}

func (e *ExtraHourEntry) BeforeSave(_ *gorm.DB) error {
	e.Date = Day(e.Date)
	return nil
}

// TotalHours horas + minutos em fração de hora
func (e *ExtraHourEntry) TotalHours() float64 {
	return float64(e.Hours) + float64(e.Minutes)/60
}
