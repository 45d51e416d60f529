package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/config"
	"github.com/azalim25/cfoescala-sub000/internal/api/handler"
	"github.com/azalim25/cfoescala-sub000/internal/api/router"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/database"
	"github.com/azalim25/cfoescala-sub000/pkg/jwt"
	applogger "github.com/azalim25/cfoescala-sub000/pkg/logger"
	"github.com/azalim25/cfoescala-sub000/pkg/redis"
)

func main() {
	// 0. .env opcional (desenvolvimento local)
	_ = godotenv.Load()

	// 1. configuração
	cfg, err := config.Load(os.Getenv("ESCALA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// 2. logs
	logger, err := applogger.NewLogger(&cfg.Log, zap.String("program", cfg.Roster.Program))
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao iniciar logs: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando aplicação...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. banco de dados
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("falha ao conectar ao banco", zap.Error(err))
	}
	if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("falha na migração do banco", zap.Error(err))
	}

	// 4. Redis opcional: sem ele não há revogação de token nem limite de requisições
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis indisponível, seguindo sem revogação de token", zap.Error(err))
			rdb = nil
		}
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. injeção de dependências: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc, rdb)

	// 7. rotas
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. servidor HTTP com desligamento gracioso
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP no ar", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("erro no servidor HTTP", zap.Error(err))
		}
	}()

	// 9. sinais do sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("sinal recebido, desligando...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("erro ao desligar o servidor", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor encerrado")
}
