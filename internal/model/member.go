package model

import "gorm.io/gorm"

// ServiceMember militar do efetivo (tabela service_members)
type ServiceMember struct {
	MemberID      string `gorm:"primaryKey;size:36"           json:"member_id"`
	Name          string `gorm:"size:120;not null"            json:"name"`
	Rank          string `gorm:"size:40;not null;default:''"  json:"rank"`
	ServiceNumber string `gorm:"size:30;not null;uniqueIndex" json:"service_number"`
	Seniority     *int   `json:"seniority,omitempty"` // menor = mais antigo; nulo = mais moderno
	Unit          string `gorm:"size:60;not null;default:''"  json:"unit"`
	BaseModel
}

// TableName nome da tabela
func (ServiceMember) TableName() string { return "service_members" }

func (m *ServiceMember) BeforeCreate(_ *gorm.DB) error {
	newID(&m.MemberID)
	return nil
}
