package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/config"
	"github.com/azalim25/cfoescala-sub000/internal/api/handler"
	"github.com/azalim25/cfoescala-sub000/internal/api/middleware"
	"github.com/azalim25/cfoescala-sub000/pkg/jwt"
	"github.com/azalim25/cfoescala-sub000/pkg/redis"
)

// limite do corpo: cobre upload de calendário .ics
const maxBodyBytes = 4 << 20

// Setup inicializa o engine Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── middleware global ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	// limite contado por militar: vem depois do JWT
	v1.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	v1.Use(middleware.RateLimit(rdb, cfg.Roster.RateLimitPerMinute, time.Minute, logger))
	{
		editors := middleware.RoleAuth(middleware.RoleModerator, middleware.RoleAdmin)

		v1.GET("/auth/me", h.Auth.Me)
		v1.POST("/auth/logout", h.Auth.Logout)

		v1.GET("/catalog", h.Report.Catalog)

		// efetivo
		members := v1.Group("/members")
		{
			members.GET("", h.Member.ListMembers)
			members.GET("/:id", h.Member.GetMember)
			members.POST("", editors, h.Member.CreateMember)
			members.PUT("/:id", editors, h.Member.UpdateMember)
			members.DELETE("/:id", middleware.RoleAuth(middleware.RoleAdmin), h.Member.DeleteMember)
		}

		// feriados
		holidays := v1.Group("/holidays")
		{
			holidays.GET("", h.Holiday.ListHolidays)
			holidays.GET("/:id", h.Holiday.GetHoliday)
			holidays.POST("", editors, h.Holiday.CreateHoliday)
			holidays.POST("/import", editors, h.Holiday.ImportHolidays)
			holidays.PUT("/:id", editors, h.Holiday.UpdateHoliday)
			holidays.DELETE("/:id", editors, h.Holiday.DeleteHoliday)
		}

		// escala
		shifts := v1.Group("/shifts")
		{
			shifts.GET("", h.Shift.ListShifts)
			shifts.GET("/:id", h.Shift.GetShift)
			shifts.POST("", editors, h.Shift.CreateShift)
			shifts.PUT("/days", editors, h.Shift.ReplaceDays)
			shifts.PUT("/:id", editors, h.Shift.UpdateShift)
			shifts.DELETE("/:id", editors, h.Shift.DeleteShift)
		}

		// estágios
		stages := v1.Group("/stages")
		{
			stages.GET("", h.Stage.ListStages)
			stages.GET("/:id", h.Stage.GetStage)
			stages.POST("", editors, h.Stage.CreateStage)
			stages.PUT("/:id", editors, h.Stage.UpdateStage)
			stages.DELETE("/:id", editors, h.Stage.DeleteStage)
		}

		// livro de horas
		extraHours := v1.Group("/extra-hours")
		{
			extraHours.GET("", h.ExtraHour.ListEntries)
			extraHours.GET("/:id", h.ExtraHour.GetEntry)
			extraHours.POST("", editors, h.ExtraHour.CreateEntry)
			extraHours.PUT("/:id", editors, h.ExtraHour.UpdateEntry)
			extraHours.DELETE("/:id", editors, h.ExtraHour.DeleteEntry)
		}

		// relatórios
		reports := v1.Group("/reports")
		{
			reports.GET("/timeline", h.Report.Timeline)
			reports.GET("/calendar", h.Report.Calendar)
			reports.GET("/workload", h.Report.Workloads)
			reports.GET("/workload/me", h.Report.MyWorkload)
			reports.GET("/workload/:member_id", h.Report.Workload)
			reports.GET("/ranking", h.Report.Ranking)
			reports.GET("/matrix", h.Report.Matrix)
			reports.GET("/consolidated", h.Report.Consolidated)
		}

		// exportação
		export := v1.Group("/export")
		{
			export.GET("/ranking", h.Export.ExportRanking)
			export.GET("/matrix", h.Export.ExportMatrix)
			export.GET("/workload", h.Export.ExportWorkload)
			export.GET("/calendar/:member_id", h.Export.ExportCalendar)
		}
	}

	return r
}
