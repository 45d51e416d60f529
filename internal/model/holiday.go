package model

import (
	"time"

	"gorm.io/gorm"
)

// Holiday feriado (tabela holidays)
// Datas repetidas não são mescladas; é problema de qualidade de dados do cadastro.
type Holiday struct {
	HolidayID   string    `gorm:"primaryKey;size:36"           json:"holiday_id"`
	Date        time.Time `gorm:"type:date;not null;index"     json:"date"`
	Description string    `gorm:"size:200;not null;default:''" json:"description"`
	BaseModel
}

// TableName nome da tabela
func (Holiday) TableName() string { return "holidays" }

func (h *Holiday) BeforeCreate(_ *gorm.DB) error {
	newID(&h.HolidayID)
	return nil
}

func (h *Holiday) BeforeSave(_ *gorm.DB) error {
	h.Date = Day(h.Date)
	return nil
}
