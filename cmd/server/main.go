package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabquiz/internal/api"
	"vocabquiz/internal/config"
	"vocabquiz/internal/database"
	"vocabquiz/internal/repository/postgres"
	"vocabquiz/internal/scheduler"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting word source server")

	// Load configuration
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database with retries
	db, err := database.Connect(cfg.Database.DSN(), database.DefaultRetryPolicy, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := database.Migrate(db, "migrations", logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	dictionaryRepo := postgres.NewDictionaryRepo(db)
	attemptRepo := postgres.NewAttemptRepo(db)

	// Initialize services
	dictionary := service.NewDictionaryCache(dictionaryRepo, logger)
	if err := dictionary.Refresh(); err != nil {
		logger.Warn("Initial dictionary load failed", zap.Error(err))
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	wordService := service.NewWordService(dictionary, attemptRepo, cfg.PNewWord, rnd, logger)
	resultService := service.NewResultService(attemptRepo, logger)
	statsService := service.NewStatsService(attemptRepo, logger)

	// Keep the dictionary cache fresh
	sched := scheduler.New(logger)
	if err := sched.Every("dictionary-refresh", cfg.DictionaryRefresh, dictionary.Refresh); err != nil {
		logger.Fatal("Failed to schedule dictionary refresh", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	h := api.NewHandler(wordService, resultService, statsService, db, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down server", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
