package service

import (
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/config"
	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
)

// Service ponto de entrada agregado de todos os serviços
type Service struct {
	Member    MemberService
	Holiday   HolidayService
	Shift     ShiftService
	Stage     StageService
	ExtraHour ExtraHourService
	Report    ReportService
	Export    ExportService
}

// NewService cria o agregador
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	loc := cfg.Roster.Location()
	catalog := duty.NewLocationCatalog(cfg.Roster.Locations)
	report := NewReportService(repo, catalog, cfg.Roster.Program, logger)

	return &Service{
		Member:    NewMemberService(repo, logger),
		Holiday:   NewHolidayService(repo, loc, logger),
		Shift:     NewShiftService(repo, logger),
		Stage:     NewStageService(repo, logger),
		ExtraHour: NewExtraHourService(repo, logger),
		Report:    report,
		Export:    NewExportService(report, cfg.Roster.Program, loc, logger),
	}
}
