package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	TextProvider string // "gemini" (default) or "groq"

	MongoURI string
	MongoDB  string

	JWTSecret string
	Port      string

	MetricsDBPath string

	// Analysis pipeline knobs
	AnalysisTimeout          time.Duration
	MaxAttempts              int
	BackoffBase              time.Duration
	IncludeHiddenInNutrition bool

	// Telegram Config (optional; required only for the bot binary)
	TelegramBotToken   string
	TelegramWebhookURL string
	AdminTelegramID    int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	cfg := &Config{
		GeminiAPIKey: geminiAPIKey,
		GeminiModel:  envOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		TextProvider: envOrDefault("TEXT_PROVIDER", "gemini"),

		MongoURI: mongoURI,
		MongoDB:  envOrDefault("MONGO_DB", "food-app-swift"),

		JWTSecret: jwtSecret,
		Port:      envOrDefault("PORT", "5000"),

		MetricsDBPath: envOrDefault("METRICS_DB_PATH", "data/metrics.db"),

		AnalysisTimeout:          time.Duration(envIntOrDefault("ANALYSIS_TIMEOUT_SECONDS", 120)) * time.Second,
		MaxAttempts:              envIntOrDefault("ANALYSIS_MAX_ATTEMPTS", 3),
		BackoffBase:              time.Duration(envIntOrDefault("ANALYSIS_BACKOFF_SECONDS", 2)) * time.Second,
		IncludeHiddenInNutrition: envOrDefault("NUTRITION_INCLUDE_HIDDEN", "true") != "false",

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if cfg.TextProvider == "groq" && cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("TEXT_PROVIDER=groq but GROQ_API_KEY environment variable not set")
	}

	if adminID := os.Getenv("ADMIN_TELEGRAM_ID"); adminID != "" {
		fmt.Sscanf(adminID, "%d", &cfg.AdminTelegramID)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
