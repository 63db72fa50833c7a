package meal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedTimeService(repo Repository, at time.Time) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return at }
	return s
}

func TestSaveMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := NewInMemoryRepository()
		service := NewService(repo)

		m := &Meal{
			UserID:           "user-1",
			DishPrediction:   "Chicken curry",
			ImageDescription: "Chicken | 150 | g | pieces in sauce",
			NutritionInfo:    "Calories | 650 | kcal | estimated total",
		}
		if err := service.SaveMeal(ctx, m); err != nil {
			t.Fatalf("SaveMeal failed: %v", err)
		}
		if m.Timestamp.IsZero() {
			t.Error("Expected a timestamp to be assigned")
		}

		meals, err := service.UserMeals(ctx, "user-1")
		if err != nil {
			t.Fatalf("UserMeals failed: %v", err)
		}
		if len(meals) != 1 {
			t.Fatalf("Expected 1 meal, got %d", len(meals))
		}
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		service := NewService(NewInMemoryRepository())

		err := service.SaveMeal(ctx, &Meal{UserID: "user-1", DishPrediction: "Curry"})
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("Expected ErrMissingFields, got %v", err)
		}
	})
}

func TestDailyLogs(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsNonPositiveAmounts", func(t *testing.T) {
		service := NewService(NewInMemoryRepository())

		if err := service.LogWater(ctx, &WaterLog{UserID: "u", AmountML: 0}); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Expected ErrMissingFields for zero water, got %v", err)
		}
		if err := service.LogWeight(ctx, &WeightLog{UserID: "u", WeightKG: -1}); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Expected ErrMissingFields for negative weight, got %v", err)
		}
		if err := service.LogExercise(ctx, &ExerciseLog{UserID: "u", Activity: " ", DurationMin: 30}); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Expected ErrMissingFields for blank activity, got %v", err)
		}
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	noon := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("SumsTodaysMealsAndLogs", func(t *testing.T) {
		repo := NewInMemoryRepository()
		service := fixedTimeService(repo, noon)

		meals := []*Meal{
			{
				UserID:           "user-1",
				DishPrediction:   "Breakfast bowl",
				ImageDescription: "Oats | 80 | g | base",
				NutritionInfo:    "Calories | 400 | kcal | oats and milk\nProtein | 20 | g | milk\nFat | 10 | g | nuts\nCarbohydrates | 60 | g | oats",
			},
			{
				UserID:           "user-1",
				DishPrediction:   "Chicken curry",
				ImageDescription: "Chicken | 150 | g | pieces",
				NutritionInfo:    "Calories | 650 | kcal | estimate\nProtein | 35 | g | chicken\nFat | 22 | g | oil\nCarbohydrates | 70 | g | rice",
			},
		}
		for _, m := range meals {
			if err := service.SaveMeal(ctx, m); err != nil {
				t.Fatalf("SaveMeal failed: %v", err)
			}
		}
		if err := service.LogExercise(ctx, &ExerciseLog{UserID: "user-1", Activity: "run", DurationMin: 30, CaloriesBurned: 300}); err != nil {
			t.Fatalf("LogExercise failed: %v", err)
		}
		if err := service.LogWater(ctx, &WaterLog{UserID: "user-1", AmountML: 500}); err != nil {
			t.Fatalf("LogWater failed: %v", err)
		}
		if err := service.LogWeight(ctx, &WeightLog{UserID: "user-1", WeightKG: 78.5}); err != nil {
			t.Fatalf("LogWeight failed: %v", err)
		}

		stats, err := service.Dashboard(ctx, "user-1")
		if err != nil {
			t.Fatalf("Dashboard failed: %v", err)
		}
		if stats.Meals != 2 {
			t.Errorf("Expected 2 meals, got %d", stats.Meals)
		}
		if stats.Calories != 1050 {
			t.Errorf("Expected 1050 calories, got %v", stats.Calories)
		}
		if stats.ProteinG != 55 {
			t.Errorf("Expected 55 g protein, got %v", stats.ProteinG)
		}
		if stats.WaterML != 500 {
			t.Errorf("Expected 500 ml water, got %v", stats.WaterML)
		}
		if stats.LatestWeightKG != 78.5 {
			t.Errorf("Expected latest weight 78.5, got %v", stats.LatestWeightKG)
		}
		if stats.NetCalories != 750 {
			t.Errorf("Expected 750 net calories, got %v", stats.NetCalories)
		}
		if stats.Date != "2025-06-10" {
			t.Errorf("Expected date 2025-06-10, got %s", stats.Date)
		}
	})

	t.Run("IgnoresOtherDaysAndUsers", func(t *testing.T) {
		repo := NewInMemoryRepository()
		service := fixedTimeService(repo, noon)

		yesterday := &Meal{
			UserID:           "user-1",
			DishPrediction:   "Old meal",
			ImageDescription: "Rice | 200 | g | bowl",
			NutritionInfo:    "Calories | 500 | kcal | estimate",
			Timestamp:        noon.AddDate(0, 0, -1),
		}
		if err := service.SaveMeal(ctx, yesterday); err != nil {
			t.Fatalf("SaveMeal failed: %v", err)
		}
		other := &Meal{
			UserID:           "user-2",
			DishPrediction:   "Someone else's meal",
			ImageDescription: "Pasta | 100 | g | plate",
			NutritionInfo:    "Calories | 300 | kcal | estimate",
		}
		if err := service.SaveMeal(ctx, other); err != nil {
			t.Fatalf("SaveMeal failed: %v", err)
		}

		stats, err := service.Dashboard(ctx, "user-1")
		if err != nil {
			t.Fatalf("Dashboard failed: %v", err)
		}
		if stats.Meals != 0 || stats.Calories != 0 {
			t.Errorf("Expected empty day, got %+v", stats)
		}
	})

	t.Run("MalformedNutritionLinesAreSkipped", func(t *testing.T) {
		repo := NewInMemoryRepository()
		service := fixedTimeService(repo, noon)

		m := &Meal{
			UserID:           "user-1",
			DishPrediction:   "Odd meal",
			ImageDescription: "Thing | 1 | piece | on plate",
			NutritionInfo:    "Calories | 400 | kcal | fine\ngarbage line\nProtein | abc | g | broken",
		}
		if err := service.SaveMeal(ctx, m); err != nil {
			t.Fatalf("SaveMeal failed: %v", err)
		}

		stats, err := service.Dashboard(ctx, "user-1")
		if err != nil {
			t.Fatalf("Dashboard failed: %v", err)
		}
		if stats.Calories != 400 || stats.ProteinG != 0 {
			t.Errorf("Expected only the parseable line to count, got %+v", stats)
		}
	})
}
