package meal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-analyzer/internal/database"
)

// MongoRepository stores meals and daily logs across four collections.
type MongoRepository struct {
	meals    *mongo.Collection
	exercise *mongo.Collection
	water    *mongo.Collection
	weight   *mongo.Collection
}

func NewMongoRepository(db *database.Mongo) *MongoRepository {
	return &MongoRepository{
		meals:    db.Collection("meals"),
		exercise: db.Collection("exercise_logs"),
		water:    db.Collection("water_logs"),
		weight:   db.Collection("weight_logs"),
	}
}

func (r *MongoRepository) SaveMeal(ctx context.Context, m *Meal) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := r.meals.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}
	return nil
}

func (r *MongoRepository) MealsByUser(ctx context.Context, userID string) ([]Meal, error) {
	return r.findMeals(ctx, bson.M{"user_id": userID})
}

func (r *MongoRepository) MealsSince(ctx context.Context, userID string, since time.Time) ([]Meal, error) {
	return r.findMeals(ctx, bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}})
}

func (r *MongoRepository) findMeals(ctx context.Context, filter bson.M) ([]Meal, error) {
	cur, err := r.meals.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer cur.Close(ctx)

	meals := []Meal{}
	if err := cur.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}
	return meals, nil
}

func (r *MongoRepository) LogExercise(ctx context.Context, e *ExerciseLog) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if _, err := r.exercise.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to insert exercise log: %w", err)
	}
	return nil
}

func (r *MongoRepository) LogWater(ctx context.Context, w *WaterLog) error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if _, err := r.water.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to insert water log: %w", err)
	}
	return nil
}

func (r *MongoRepository) LogWeight(ctx context.Context, w *WeightLog) error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if _, err := r.weight.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to insert weight log: %w", err)
	}
	return nil
}

func (r *MongoRepository) ExercisesSince(ctx context.Context, userID string, since time.Time) ([]ExerciseLog, error) {
	cur, err := r.exercise.Find(ctx, bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise logs: %w", err)
	}
	defer cur.Close(ctx)

	logs := []ExerciseLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode exercise logs: %w", err)
	}
	return logs, nil
}

func (r *MongoRepository) WaterSince(ctx context.Context, userID string, since time.Time) ([]WaterLog, error) {
	cur, err := r.water.Find(ctx, bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, fmt.Errorf("failed to query water logs: %w", err)
	}
	defer cur.Close(ctx)

	logs := []WaterLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode water logs: %w", err)
	}
	return logs, nil
}

func (r *MongoRepository) LatestWeight(ctx context.Context, userID string) (*WeightLog, error) {
	var w WeightLog
	err := r.weight.FindOne(ctx,
		bson.M{"user_id": userID},
		options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest weight: %w", err)
	}
	return &w, nil
}
