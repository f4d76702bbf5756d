package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/ai"
	"github.com/Aurelio-One/p9/internal/config"
	"github.com/Aurelio-One/p9/internal/infrastructure/persistence/repository"
	"github.com/Aurelio-One/p9/internal/infrastructure/persistence/sqlite"
	"github.com/Aurelio-One/p9/internal/infrastructure/storage"
	httpserver "github.com/Aurelio-One/p9/internal/interfaces/http"
	"github.com/Aurelio-One/p9/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting bill store server",
		zap.Int("port", cfg.Server.Port))

	db, err := sqlite.New(sqlite.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Storage.ReceiptDir, 0755); err != nil {
		logger.Fatal("Failed to create receipt directory", zap.Error(err))
	}

	billRepo := repository.NewBillRepository(db.DB, logger)
	receipts := storage.NewReceiptStorage(cfg.Storage.ReceiptDir, cfg.Storage.PublicBaseURL, logger)

	var auditor *ai.Auditor
	if cfg.OpenAI.APIKey != "" {
		auditor = ai.NewAuditor(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, logger)
		logger.Info("Advisory bill audit enabled", zap.String("model", cfg.OpenAI.Model))
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, billRepo, receipts, auditor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}
