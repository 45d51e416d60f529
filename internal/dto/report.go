package dto

import "github.com/azalim25/cfoescala-sub000/internal/duty"

// ── relatórios ──

// RankingQuery tipos de serviço considerados (repetível: ?type=Estágio&type=...)
type RankingQuery struct {
	Types         []string `form:"type"`
	ExcludeManual bool     `form:"exclude_manual"`
}

// MatrixQuery faixas de duração (padrão 12 e 24)
type MatrixQuery struct {
	Tiers []int `form:"tier"`
}

// ConsolidatedQuery tipo contado por ocorrência
type ConsolidatedQuery struct {
	Type string `form:"type" binding:"required"`
}

// TimelineResponse linha do tempo unificada
type TimelineResponse struct {
	Entries   []duty.Entry         `json:"entries"`
	Manual    []duty.ManualCounter `json:"manual"`
	Anomalies []duty.Anomaly       `json:"anomalies"`
}

// CatalogResponse catálogos fixos usados pelos formulários
type CatalogResponse struct {
	Types     []duty.Type `json:"types"`
	Locations []string    `json:"locations"`
	Program   string      `json:"program"`
}
