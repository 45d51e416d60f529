package dto

import "github.com/azalim25/cfoescala-sub000/internal/model"

// CreateStageRequest estágio registrado pela tela dedicada
type CreateStageRequest struct {
	MemberID         string   `json:"member_id"`
	Date             string   `json:"date"`
	Location         string   `json:"location"          binding:"omitempty,max=120"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	ExplicitDuration *float64 `json:"explicit_duration" binding:"omitempty,min=0,max=48"`
}

// UpdateStageRequest atualização parcial
type UpdateStageRequest struct {
	MemberID         *string  `json:"member_id"`
	Date             *string  `json:"date"`
	Location         *string  `json:"location"          binding:"omitempty,max=120"`
	StartTime        *string  `json:"start_time"`
	EndTime          *string  `json:"end_time"`
	ExplicitDuration *float64 `json:"explicit_duration" binding:"omitempty,min=0,max=48"`
	ClearDuration    bool     `json:"clear_duration"`
}

// StageResponse estágio
type StageResponse struct {
	ID               string   `json:"id"`
	MemberID         string   `json:"member_id"`
	Date             string   `json:"date"`
	Location         string   `json:"location"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	ExplicitDuration *float64 `json:"explicit_duration,omitempty"`
}

// NewStageResponse converte o modelo
func NewStageResponse(s *model.StageAssignment) StageResponse {
	return StageResponse{
		ID:               s.StageID,
		MemberID:         s.MemberID,
		Date:             s.Date.Format(model.DateLayout),
		Location:         s.Location,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		ExplicitDuration: s.ExplicitDuration,
	}
}
