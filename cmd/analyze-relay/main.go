package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"formforge-backend/infrastructure/config"
	"formforge-backend/interfaces/http/relay"
	"formforge-backend/interfaces/http/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	handler := relay.NewHandler(cfg.AnalyzeUpstreamURL, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(logger))
	router.Post("/analyze", handler.Analyze)

	srv := &http.Server{
		Addr:         cfg.RelayAddress,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Starting analysis relay",
		zap.String("address", cfg.RelayAddress),
		zap.String("upstream", cfg.AnalyzeUpstreamURL),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Relay failed to start", zap.Error(err))
	}
}
