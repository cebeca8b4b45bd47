package main

import (
	"fmt"
	"os"

	"github.com/pavetrack/billing-service/internal/auth"
	"github.com/pavetrack/billing-service/internal/config"
	"github.com/pavetrack/billing-service/internal/db"
	"github.com/pavetrack/billing-service/internal/excel"
	httphandler "github.com/pavetrack/billing-service/internal/http"
	"github.com/pavetrack/billing-service/internal/http/middleware"
	"github.com/pavetrack/billing-service/internal/logger"
	"github.com/pavetrack/billing-service/internal/pdf"
	"github.com/pavetrack/billing-service/internal/repository"
	"github.com/pavetrack/billing-service/internal/service"
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

	catalogRepo := repository.NewCatalogRepository(database)
	commitmentRepo := repository.NewCommitmentRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	fuelRepo := repository.NewFuelRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	progressService := service.NewProgressService(progressRepo, cfg.Progress.CompletedStatuses)
	catalogService := service.NewCatalogService(catalogRepo)
	commitmentService := service.NewCommitmentService(commitmentRepo, catalogRepo, progressService)
	billingService := service.NewBillingService(projectRepo, commitmentRepo, expenseRepo, progressService, excelGenerator, pdfGenerator)
	fuelService := service.NewFuelService(fuelRepo, expenseRepo, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(catalogService, commitmentService, billingService, fuelService, progressService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
