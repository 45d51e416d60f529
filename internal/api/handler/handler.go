package handler

import (
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/redis"
)

// Handler ponto de entrada agregado de todos os handlers
type Handler struct {
	Auth      *AuthHandler
	Member    *MemberHandler
	Holiday   *HolidayHandler
	Shift     *ShiftHandler
	Stage     *StageHandler
	ExtraHour *ExtraHourHandler
	Report    *ReportHandler
	Export    *ExportHandler
}

// NewHandler cria o agregador; rdb pode ser nil (logout sem revogação)
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(rdb),
		Member:    NewMemberHandler(svc.Member),
		Holiday:   NewHolidayHandler(svc.Holiday),
		Shift:     NewShiftHandler(svc.Shift),
		Stage:     NewStageHandler(svc.Stage),
		ExtraHour: NewExtraHourHandler(svc.ExtraHour),
		Report:    NewReportHandler(svc.Report),
		Export:    NewExportHandler(svc.Export),
	}
}
