// Package meal persists saved analyses and the daily exercise, water and
// weight logs, and rolls them up into dashboard stats.
package meal

import (
	"context"
	"errors"
	"strings"
	"time"

	"food-analyzer/internal/analysis"
)

var (
	ErrMissingFields = errors.New("missing required fields")
)

// Service wraps the repository with validation and the dashboard rollup.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SaveMeal stores one analyzed meal. The analysis text blocks are required;
// the image payload is optional.
func (s *Service) SaveMeal(ctx context.Context, m *Meal) error {
	if m.UserID == "" || m.DishPrediction == "" || m.ImageDescription == "" || m.NutritionInfo == "" {
		return ErrMissingFields
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now().UTC()
	}
	return s.repo.SaveMeal(ctx, m)
}

// UserMeals lists every saved meal for one user, newest first.
func (s *Service) UserMeals(ctx context.Context, userID string) ([]Meal, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}
	return s.repo.MealsByUser(ctx, userID)
}

// LogExercise stores one workout entry.
func (s *Service) LogExercise(ctx context.Context, e *ExerciseLog) error {
	if e.UserID == "" || strings.TrimSpace(e.Activity) == "" || e.DurationMin <= 0 {
		return ErrMissingFields
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	return s.repo.LogExercise(ctx, e)
}

// LogWater stores one drink entry.
func (s *Service) LogWater(ctx context.Context, w *WaterLog) error {
	if w.UserID == "" || w.AmountML <= 0 {
		return ErrMissingFields
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = s.now().UTC()
	}
	return s.repo.LogWater(ctx, w)
}

// LogWeight stores one weigh-in.
func (s *Service) LogWeight(ctx context.Context, w *WeightLog) error {
	if w.UserID == "" || w.WeightKG <= 0 {
		return ErrMissingFields
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = s.now().UTC()
	}
	return s.repo.LogWeight(ctx, w)
}

// Dashboard computes the current-day totals for one user. Macro totals come
// from reparsing the stored nutrition blocks, so meals saved by older app
// versions with extra nutrients still sum correctly.
func (s *Service) Dashboard(ctx context.Context, userID string) (*DashboardStats, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	meals, err := s.repo.MealsSince(ctx, userID, dayStart)
	if err != nil {
		return nil, err
	}
	exercises, err := s.repo.ExercisesSince(ctx, userID, dayStart)
	if err != nil {
		return nil, err
	}
	waters, err := s.repo.WaterSince(ctx, userID, dayStart)
	if err != nil {
		return nil, err
	}
	latestWeight, err := s.repo.LatestWeight(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Date:  dayStart.Format("2006-01-02"),
		Meals: len(meals),
	}
	for _, m := range meals {
		records, _ := analysis.ParseLines(m.NutritionInfo)
		for _, rec := range records {
			switch strings.ToLower(rec.Name) {
			case "calories":
				stats.Calories += rec.Quantity
			case "protein":
				stats.ProteinG += rec.Quantity
			case "fat":
				stats.FatG += rec.Quantity
			case "carbohydrates":
				stats.CarbohydratesG += rec.Quantity
			}
		}
	}
	for _, e := range exercises {
		stats.ExerciseMin += e.DurationMin
		stats.CaloriesBurned += e.CaloriesBurned
	}
	for _, w := range waters {
		stats.WaterML += w.AmountML
	}
	if latestWeight != nil {
		stats.LatestWeightKG = latestWeight.WeightKG
	}
	stats.NetCalories = stats.Calories - stats.CaloriesBurned

	return stats, nil
}
