package meal

import (
	"context"
	"time"
)

// Repository is the data-access contract for meals and daily logs.
type Repository interface {
	SaveMeal(ctx context.Context, m *Meal) error
	MealsByUser(ctx context.Context, userID string) ([]Meal, error)
	MealsSince(ctx context.Context, userID string, since time.Time) ([]Meal, error)

	LogExercise(ctx context.Context, e *ExerciseLog) error
	LogWater(ctx context.Context, w *WaterLog) error
	LogWeight(ctx context.Context, w *WeightLog) error

	ExercisesSince(ctx context.Context, userID string, since time.Time) ([]ExerciseLog, error)
	WaterSince(ctx context.Context, userID string, since time.Time) ([]WaterLog, error)
	LatestWeight(ctx context.Context, userID string) (*WeightLog, error)
}
