package dto

import (
	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// CreateExtraHourRequest lançamento no livro de horas
type CreateExtraHourRequest struct {
	MemberID    string `json:"member_id"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Hours       int    `json:"hours"`
	Minutes     int    `json:"minutes"`
	Description string `json:"description"`
}

// UpdateExtraHourRequest atualização parcial
type UpdateExtraHourRequest struct {
	MemberID    *string `json:"member_id"`
	Date        *string `json:"date"`
	Category    *string `json:"category"`
	Hours       *int    `json:"hours"`
	Minutes     *int    `json:"minutes"`
	Description *string `json:"description"`
}

// ExtraHourResponse lançamento com a categoria já interpretada
type ExtraHourResponse struct {
	ID          string        `json:"id"`
	MemberID    string        `json:"member_id"`
	Date        string        `json:"date"`
	Category    string        `json:"category"`
	Parsed      duty.Category `json:"parsed_category"`
	Hours       int           `json:"hours"`
	Minutes     int           `json:"minutes"`
	TotalHours  float64       `json:"total_hours"`
	Description string        `json:"description"`
}

// NewExtraHourResponse converte o modelo
func NewExtraHourResponse(e *model.ExtraHourEntry) ExtraHourResponse {
	return ExtraHourResponse{
		ID:          e.EntryID,
		MemberID:    e.MemberID,
		Date:        e.Date.Format(model.DateLayout),
		Category:    e.Category,
		Parsed:      duty.ParseCategory(e.Category),
		Hours:       e.Hours,
		Minutes:     e.Minutes,
		TotalHours:  e.TotalHours(),
		Description: e.Description,
	}
}
