package main

import (
	"context"
	"fmt"
	"os"

	"vocabquiz/internal/config"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/terminal"
	"vocabquiz/internal/wordsource"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the quiz, logs go to a file
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{cfg.LogFile}
	logCfg.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	restore, err := terminal.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		logger.Fatal("Failed to prepare terminal", zap.Error(err))
	}

	client := wordsource.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)
	screen := terminal.NewScreen(os.Stdout)
	session := quiz.NewSession(client, screen, quiz.Config{
		BatchSize: cfg.BatchSize,
		LowWater:  cfg.LowWater,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = session.Run(ctx)
	}()

	if err := terminal.ReadKeys(ctx, os.Stdin, session); err != nil {
		logger.Error("Input stopped", zap.Error(err))
	}

	score, err := session.Score(ctx)
	if err != nil {
		logger.Error("Failed to read score", zap.Error(err))
	}

	cancel()
	<-stopped

	screen.ShowSummary(score)

	if err := restore(); err != nil {
		logger.Error("Failed to restore terminal", zap.Error(err))
	}
}
