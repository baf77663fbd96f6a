package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ServerConfig holds the word source server configuration
type ServerConfig struct {
	Addr              string
	Database          DatabaseConfig
	AllowedOrigins    []string
	DictionaryRefresh time.Duration
	PNewWord          float64
}

// ClientConfig holds quiz client settings shared by the terminal and the bot
type ClientConfig struct {
	APIBaseURL  string
	BatchSize   int
	LowWater    int
	HTTPTimeout time.Duration
	LogFile     string
}

// BotConfig holds the Telegram front end configuration
type BotConfig struct {
	Client   ClientConfig
	BotToken string
	OwnerID  int64
}

// ImporterConfig holds the dictionary importer configuration
type ImporterConfig struct {
	Database DatabaseConfig
}

// LoadServer reads server configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	db, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	refresh, err := getDuration("DICTIONARY_REFRESH", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	pNew, err := getFloat("P_NEW_WORD", 0.7)
	if err != nil {
		return nil, err
	}
	if pNew < 0 || pNew > 1 {
		return nil, fmt.Errorf("P_NEW_WORD must be within [0, 1], got %v", pNew)
	}

	return &ServerConfig{
		Addr:              getEnv("HTTP_ADDR", ":8000"),
		Database:          db,
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DictionaryRefresh: refresh,
		PNewWord:          pNew,
	}, nil
}

// LoadClient reads quiz client configuration from environment variables
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()
	return loadClient()
}

// LoadBot reads bot configuration from environment variables
func LoadBot() (*BotConfig, error) {
	_ = godotenv.Load()

	client, err := loadClient()
	if err != nil {
		return nil, err
	}

	cfg := &BotConfig{
		Client:   *client,
		BotToken: os.Getenv("BOT_TOKEN"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	rawOwner := os.Getenv("BOT_OWNER_ID")
	if rawOwner == "" {
		return nil, fmt.Errorf("BOT_OWNER_ID is required")
	}
	cfg.OwnerID, err = strconv.ParseInt(rawOwner, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("BOT_OWNER_ID must be an integer: %w", err)
	}

	return cfg, nil
}

// LoadImporter reads importer configuration from environment variables
func LoadImporter() (*ImporterConfig, error) {
	_ = godotenv.Load()

	db, err := loadDatabase()
	if err != nil {
		return nil, err
	}
	return &ImporterConfig{Database: db}, nil
}

// DSN returns PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
	)
}

func loadDatabase() (DatabaseConfig, error) {
	db := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "vocabquiz"),
		User:     getEnv("DB_USER", "vocabquiz"),
		Password: os.Getenv("DB_PASSWORD"),
	}
	if db.Password == "" {
		return DatabaseConfig{}, fmt.Errorf("DB_PASSWORD is required")
	}
	return db, nil
}

func loadClient() (*ClientConfig, error) {
	batch, err := getInt("QUIZ_BATCH_SIZE", 20)
	if err != nil {
		return nil, err
	}
	lowWater, err := getInt("QUIZ_LOW_WATER", 3)
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &ClientConfig{
		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		BatchSize:   batch,
		LowWater:    lowWater,
		HTTPTimeout: timeout,
		LogFile:     getEnv("QUIZ_LOG_FILE", "quiz.log"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
