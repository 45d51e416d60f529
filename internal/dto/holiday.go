package dto

import "github.com/azalim25/cfoescala-sub000/internal/model"

// CreateHolidayRequest cadastro de feriado
type CreateHolidayRequest struct {
	Date        string `json:"date"        binding:"required"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

// UpdateHolidayRequest atualização parcial
type UpdateHolidayRequest struct {
	Date        *string `json:"date"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// HolidayResponse feriado
type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// NewHolidayResponse converte o modelo
func NewHolidayResponse(h *model.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.HolidayID,
		Date:        h.Date.Format(model.DateLayout),
		Description: h.Description,
	}
}

// ImportHolidaysRequest importação por URL (.ics ou webcal://)
type ImportHolidaysRequest struct {
	URL string `json:"url" form:"url" binding:"required,url|startswith=webcal://"`
}
