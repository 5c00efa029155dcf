package main

import (
	"fmt"
	"os"

	"github.com/brixworth/wip-service/internal/auth"
	"github.com/brixworth/wip-service/internal/calc"
	"github.com/brixworth/wip-service/internal/config"
	"github.com/brixworth/wip-service/internal/db"
	"github.com/brixworth/wip-service/internal/excel"
	httphandler "github.com/brixworth/wip-service/internal/http"
	"github.com/brixworth/wip-service/internal/http/middleware"
	"github.com/brixworth/wip-service/internal/logger"
	"github.com/brixworth/wip-service/internal/pdf"
	"github.com/brixworth/wip-service/internal/repository"
	"github.com/brixworth/wip-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	jobRepo := repository.NewJobRepository(database)
	snapshotRepo := repository.NewSnapshotRepository(database)

	thresholds := calc.Thresholds(cfg.Risk)
	wipService := service.NewWipService(jobRepo, snapshotRepo, excel.NewGenerator(), pdf.NewGenerator(), thresholds)
	snapshotService := service.NewSnapshotService(jobRepo, snapshotRepo, thresholds, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(wipService, snapshotService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting wip service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
