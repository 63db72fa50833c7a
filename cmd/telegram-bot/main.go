package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/config"
	"food-analyzer/internal/database"
	"food-analyzer/internal/llm"
	"food-analyzer/internal/metrics"
	"food-analyzer/internal/recipe"
	"food-analyzer/internal/telegram"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set for the bot")
	}

	ctx := context.Background()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	var textGen llm.TextGenerator = geminiClient
	if cfg.TextProvider == "groq" {
		textGen = llm.NewGroqClient(cfg)
	}

	mongo, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongo.Disconnect(context.Background())

	sqliteDB, err := database.OpenSQLite(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to open metrics database: %v", err)
	}
	defer sqliteDB.Close()
	metricsStore := metrics.NewStore(sqliteDB)

	catalog := recipe.NewCatalog(recipe.NewMongoStore(mongo))
	analyzer := analysis.NewAnalyzer(geminiClient, textGen, catalog, analysis.Options{
		MaxAttempts:              cfg.MaxAttempts,
		BackoffBase:              cfg.BackoffBase,
		Timeout:                  cfg.AnalysisTimeout,
		IncludeHiddenInNutrition: cfg.IncludeHiddenInNutrition,
	})
	clipper := recipe.NewClipper(textGen)

	bot, err := telegram.NewBot(cfg, analyzer, clipper, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}
	bot.RegisterHandlers()

	port := os.Getenv("BOT_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
