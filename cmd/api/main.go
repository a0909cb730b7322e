package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/infrastructure/config"
	"formforge-backend/infrastructure/persistence/sqlite"
	"formforge-backend/infrastructure/suggest"
	"formforge-backend/interfaces/http/rest"
	"formforge-backend/pkg/auth"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Open the form store
	store, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("Failed to open form store", zap.Error(err))
	}
	defer store.Close()

	formRepo := sqlite.NewFormRepository(store, cfg.BaseURL, logger)
	submissionRepo := sqlite.NewSubmissionRepository(store, logger)

	// The suggestion client is optional; without an API key the endpoints
	// report the service as unavailable
	var suggester ports.Suggester
	if cfg.SuggestionAPIKey != "" {
		gemini, err := suggest.NewGeminiSuggester(ctx, cfg.SuggestionAPIKey, cfg.SuggestionModel, logger)
		if err != nil {
			logger.Fatal("Failed to create suggestion client", zap.Error(err))
		}
		suggester = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; field suggestions disabled")
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionIssuer)

	// Create router
	router := rest.NewRouter(formRepo, submissionRepo, suggester, sessions, logger, cfg.EnableCORS)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("databasePath", store.Path()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
