// Package recipe holds the static recipe catalog ingested from the recipes
// dataset, the name lookup the analyzer falls back on, and the URL clipper.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"food-analyzer/internal/database"
)

var ErrNotFound = errors.New("recipe not found")

// Store is the catalog's data-access contract.
type Store interface {
	Insert(ctx context.Context, recipes []Recipe) (int, error)
	FindByName(ctx context.Context, name string) (*Recipe, error)
}

// MongoStore keeps recipes in the "recipes" collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Mongo) *MongoStore {
	return &MongoStore{col: db.Collection("recipes")}
}

func (s *MongoStore) Insert(ctx context.Context, recipes []Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(recipes))
	for i := range recipes {
		if recipes[i].ID.IsZero() {
			recipes[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, recipes[i])
	}
	res, err := s.col.InsertMany(ctx, docs)
	if err != nil {
		return len(res.InsertedIDs), fmt.Errorf("failed to insert recipes: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *MongoStore) FindByName(ctx context.Context, name string) (*Recipe, error) {
	pattern := "^" + regexp.QuoteMeta(normalizeName(name)) + "$"
	var r Recipe
	err := s.col.FindOne(ctx, bson.M{
		"Name": bson.M{"$regex": pattern, "$options": "i"},
	}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &r, nil
}

// MemoryStore keeps recipes in a map, for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recipes: make(map[string]Recipe)}
}

func (s *MemoryStore) Insert(_ context.Context, recipes []Recipe) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range recipes {
		if recipes[i].ID.IsZero() {
			recipes[i].ID = primitive.NewObjectID()
		}
		s.recipes[normalizeName(recipes[i].Name)] = recipes[i]
	}
	return len(recipes), nil
}

func (s *MemoryStore) FindByName(_ context.Context, name string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[normalizeName(name)]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// Catalog adapts a Store to the analyzer's fallback lookup.
type Catalog struct {
	store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// NutritionFor looks the dish up by name and renders its nutrition block.
// Lookup failures are reported as a miss, never an error: the analyzer has
// its own fallback.
func (c *Catalog) NutritionFor(ctx context.Context, dishName string) (string, bool) {
	if dishName == "" {
		return "", false
	}
	r, err := c.store.FindByName(ctx, dishName)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("⚠️ Recipe lookup failed for %q: %v", dishName, err)
		}
		return "", false
	}
	return r.NutritionLines(), true
}
