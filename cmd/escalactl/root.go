package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/config"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	"github.com/azalim25/cfoescala-sub000/internal/service"
	"github.com/azalim25/cfoescala-sub000/pkg/database"
	applogger "github.com/azalim25/cfoescala-sub000/pkg/logger"
)

var cfgPath string

// substituídos nos testes
var (
	loadConfig  = config.Load
	openService = defaultOpenService
)

var rootCmd = &cobra.Command{
	Use:   "escalactl",
	Short: "escalactl - consulta a escala e a carga horária do efetivo",
	Long: `escalactl lê a mesma configuração e o mesmo banco do servidor e imprime
ranking de horas, carga individual e matriz de estágios, além de emitir
tokens de acesso para uso local.`,
	SilenceUsage: true,
}

// Execute ponto de entrada chamado pelo main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "arquivo de configuração (padrão ./config/config.yaml)")

	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(tokenCmd)
}

func setup() (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	// o stdout é da tabela; logs só de aviso para cima
	logCfg := cfg.Log
	logCfg.Level = "warn"
	logger, err := applogger.NewLogger(&logCfg, zap.String("component", "escalactl"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func defaultOpenService(cfg *config.Config, logger *zap.Logger) (*service.Service, func(), error) {
	db, err := database.NewDB(&cfg.Database, "warn", logger)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	return service.NewService(cfg, repository.NewRepository(db), logger), closeFn, nil
}

// withService carrega configuração e serviços, executa fn e libera a conexão
func withService(fn func(cfg *config.Config, svc *service.Service) error) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, closeFn, err := openService(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(cfg, svc)
}
