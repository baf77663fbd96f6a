package main

import (
	"fmt"
	"os"

	"vocabquiz/internal/config"
	"vocabquiz/internal/database"
	"vocabquiz/internal/importer"
	"vocabquiz/internal/repository/postgres"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dictionary.json|dictionary.xlsx>\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.LoadImporter()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database.DSN(), database.DefaultRetryPolicy, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, "migrations", logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	imp := importer.New(postgres.NewDictionaryRepo(db), logger)
	result, err := imp.ImportFile(path)
	if err != nil {
		logger.Fatal("Import failed", zap.String("file", path), zap.Error(err))
	}

	fmt.Printf("Imported %d entries, skipped %d\n", len(result.Entries), result.Skipped)
}
