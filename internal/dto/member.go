package dto

import "github.com/azalim25/cfoescala-sub000/internal/model"

// ── efetivo ──

// CreateMemberRequest cadastro de militar
type CreateMemberRequest struct {
	Name          string `json:"name"           binding:"required,min=2,max=120"`
	Rank          string `json:"rank"           binding:"omitempty,max=40"`
	ServiceNumber string `json:"service_number" binding:"required,max=30"`
	Seniority     *int   `json:"seniority"      binding:"omitempty,min=1"`
	Unit          string `json:"unit"           binding:"omitempty,max=60"`
}

// UpdateMemberRequest atualização parcial
type UpdateMemberRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=120"`
	Rank          *string `json:"rank"           binding:"omitempty,max=40"`
	ServiceNumber *string `json:"service_number" binding:"omitempty,max=30"`
	Seniority     *int    `json:"seniority"      binding:"omitempty,min=1"`
	Unit          *string `json:"unit"           binding:"omitempty,max=60"`
}

// MemberResponse militar
type MemberResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	ServiceNumber string `json:"service_number"`
	Seniority     *int   `json:"seniority,omitempty"`
	Unit          string `json:"unit"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// NewMemberResponse converte o modelo
func NewMemberResponse(m *model.ServiceMember) MemberResponse {
	return MemberResponse{
		ID:            m.MemberID,
		Name:          m.Name,
		Rank:          m.Rank,
		ServiceNumber: m.ServiceNumber,
		Seniority:     m.Seniority,
		Unit:          m.Unit,
		CreatedAt:     formatTimestamp(m.CreatedAt),
		UpdatedAt:     formatTimestamp(m.UpdatedAt),
	}
}
