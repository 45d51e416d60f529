package model

import (
	"time"

	"gorm.io/gorm"
)

// Status de uma escala
const (
	ShiftStatusConfirmed = "confirmed"
	ShiftStatusPending   = "pending"
	ShiftStatusCompleted = "completed"
)

// ShiftAssignment escala genérica (tabela shift_assignments)
type ShiftAssignment struct {
	ShiftID          string    `gorm:"primaryKey;size:36"                   json:"shift_id"`
	MemberID         string    `gorm:"size:36;not null;index"               json:"member_id"`
	Date             time.Time `gorm:"type:date;not null;index"             json:"date"`
	DutyType         string    `gorm:"size:60;not null"                     json:"duty_type"` // texto livre do catálogo
	StartTime        string    `gorm:"size:8;not null;default:''"           json:"start_time"`
	EndTime          string    `gorm:"size:8;not null;default:''"           json:"end_time"`
	Location         *string   `gorm:"size:120"                             json:"location,omitempty"`
	Status           string    `gorm:"size:20;not null;default:'confirmed'" json:"status"` // confirmed | pending | completed
	ExplicitDuration *float64  `json:"explicit_duration,omitempty"` // horas, pode ser fracionário
	BaseModel
}

// TableName nome da tabela
func (ShiftAssignment) TableName() string { return "shift_assignments" }

func (s *ShiftAssignment) BeforeCreate(_ *gorm.DB) error {
	newID(&s.ShiftID)
	return nil
}

func (s *ShiftAssignment) BeforeSave(_ *gorm.DB) error {
	s.Date = Day(s.Date)
	return nil
}

// StageAssignment estágio registrado pela tela dedicada (tabela stage_assignments)
type StageAssignment struct {
	StageID          string    `gorm:"primaryKey;size:36"           json:"stage_id"`
	MemberID         string    `gorm:"size:36;not null;index"       json:"member_id"`
	Date             time.Time `gorm:"type:date;not null"           json:"date"`
	Location         string    `gorm:"size:120;not null;default:''" json:"location"`
	StartTime        string    `gorm:"size:8;not null;default:''"   json:"start_time"`
	EndTime          string    `gorm:"size:8;not null;default:''"   json:"end_time"`
	ExplicitDuration *float64  `json:"explicit_duration,omitempty"`
	BaseModel
}

// TableName nome da tabela
func (StageAssignment) TableName() string { return "stage_assignments" }

func (s *StageAssignment) BeforeCreate(_ *gorm.DB) error {
	newID(&s.StageID)
	return nil
}

func (s *StageAssignment) BeforeSave(_ *gorm.DB) error {
	s.Date = Day(s.Date)
	return nil
}
