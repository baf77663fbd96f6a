package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabquiz/internal/config"
	"vocabquiz/internal/handler"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/wordsource"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting quiz bot")

	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully", zap.String("api_base_url", cfg.Client.APIBaseURL))

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.OwnerOnly(cfg.OwnerID, logger))

	client := wordsource.NewClient(cfg.Client.APIBaseURL, cfg.Client.HTTPTimeout, logger)
	h := handler.NewHandler(bot, client, quiz.Config{
		BatchSize: cfg.Client.BatchSize,
		LowWater:  cfg.Client.LowWater,
	}, logger)
	h.RegisterHandlers(bot)

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	h.Stop()

	logger.Info("Bot stopped gracefully")
}
