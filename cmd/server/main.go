package main

import (
	"fmt"
	"log"

	"invox/internal/batch"
	"invox/internal/config"
	"invox/internal/extract"
	"invox/internal/handler"
	"invox/internal/middleware"
	"invox/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Extractor.APIKey == "" {
		log.Printf("warning: INVOX_EXTRACTOR_API_KEY is not set; extraction requests will be rejected by the API")
	}

	// Extraction pipeline
	client := extract.NewClient(&cfg.Extractor)
	orchestrator := batch.NewOrchestrator(client, &cfg.Batch)

	// Handlers
	batchH := handler.NewBatchHandler(orchestrator)
	ledgerH := handler.NewLedgerHandler()
	exportH := handler.NewExportHandler()
	healthH := handler.NewHealthHandler()

	limiter := middleware.NewRateLimiter(&cfg.RateLimit)

	r := router.Setup(batchH, ledgerH, exportH, healthH, limiter, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
