package dto

import "github.com/azalim25/cfoescala-sub000/internal/model"

// ── escala ──

// CreateShiftRequest nova escala
// SyncStage: em escala de estágio grava também o registro correspondente na tela de estágio.
type CreateShiftRequest struct {
	MemberID         string   `json:"member_id"`
	Date             string   `json:"date"`
	DutyType         string   `json:"duty_type"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Location         *string  `json:"location"`
	Status           string   `json:"status"            binding:"omitempty,oneof=confirmed pending completed"`
	ExplicitDuration *float64 `json:"explicit_duration" binding:"omitempty,min=0,max=48"`
	SyncStage        bool     `json:"sync_stage"`
}

// UpdateShiftRequest atualização parcial; ClearLocation/ClearDuration apagam os campos anuláveis
type UpdateShiftRequest struct {
	MemberID         *string  `json:"member_id"`
	Date             *string  `json:"date"`
	DutyType         *string  `json:"duty_type"`
	StartTime        *string  `json:"start_time"`
	EndTime          *string  `json:"end_time"`
	Location         *string  `json:"location"`
	ClearLocation    bool     `json:"clear_location"`
	Status           *string  `json:"status"            binding:"omitempty,oneof=confirmed pending completed"`
	ExplicitDuration *float64 `json:"explicit_duration" binding:"omitempty,min=0,max=48"`
	ClearDuration    bool     `json:"clear_duration"`
}

// ReplaceDaysRequest sobrescreve dias inteiros da escala gerada
type ReplaceDaysRequest struct {
	Dates  []string             `json:"dates"  binding:"required,min=1"`
	Shifts []CreateShiftRequest `json:"shifts"`
}

// ReplaceDaysResponse resultado da sobrescrita
type ReplaceDaysResponse struct {
	Removed int64           `json:"removed"`
	Created []ShiftResponse `json:"created"`
}

// ShiftResponse escala
type ShiftResponse struct {
	ID               string   `json:"id"`
	MemberID         string   `json:"member_id"`
	Date             string   `json:"date"`
	DutyType         string   `json:"duty_type"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Location         *string  `json:"location,omitempty"`
	Status           string   `json:"status"`
	ExplicitDuration *float64 `json:"explicit_duration,omitempty"`
	StageID          string   `json:"stage_id,omitempty"` // preenchido quando sync_stage gravou o estágio
}

// NewShiftResponse converte o modelo
func NewShiftResponse(s *model.ShiftAssignment) ShiftResponse {
	return ShiftResponse{
		ID:               s.ShiftID,
		MemberID:         s.MemberID,
		Date:             s.Date.Format(model.DateLayout),
		DutyType:         s.DutyType,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Location:         s.Location,
		Status:           s.Status,
		ExplicitDuration: s.ExplicitDuration,
	}
}
