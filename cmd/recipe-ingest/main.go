// Command recipe-ingest loads the recipes dataset CSV into the recipe
// collection the analyzer's fallback lookup reads from.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"food-analyzer/internal/config"
	"food-analyzer/internal/database"
	"food-analyzer/internal/recipe"
)

func main() {
	csvPath := flag.String("csv", "recipes.csv", "path to the recipes CSV file")
	batchSize := flag.Int("batch", 500, "insert batch size")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	recipes, skipped, err := recipe.ReadCSV(f)
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}
	log.Printf("✅ Parsed %d recipes (%d rows skipped)", len(recipes), skipped)

	ctx := context.Background()
	mongo, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongo.Disconnect(context.Background())

	store := recipe.NewMongoStore(mongo)
	inserted := 0
	for start := 0; start < len(recipes); start += *batchSize {
		end := start + *batchSize
		if end > len(recipes) {
			end = len(recipes)
		}
		n, err := store.Insert(ctx, recipes[start:end])
		inserted += n
		if err != nil {
			log.Fatalf("Insert failed after %d recipes: %v", inserted, err)
		}
		log.Printf("… %d/%d", inserted, len(recipes))
	}

	log.Printf("✅ Inserted %d recipes.", inserted)
}
