package dto

import (
	"time"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// ── consultas comuns ──

// RangeQuery filtro de período e militar usado nas listagens e relatórios
type RangeQuery struct {
	MemberID string `form:"member_id"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// Bounds datas do período; vazio vira time.Time zero
func (q *RangeQuery) Bounds() (from, to time.Time, err error) {
	if q.From != "" {
		if from, err = model.ParseDay(q.From); err != nil {
			return
		}
	}
	if q.To != "" {
		to, err = model.ParseDay(q.To)
	}
	return
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
