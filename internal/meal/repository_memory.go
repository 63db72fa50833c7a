package meal

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryRepository keeps everything in slices, for tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	meals     []Meal
	exercises []ExerciseLog
	waters    []WaterLog
	weights   []WeightLog
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) SaveMeal(_ context.Context, m *Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	r.meals = append(r.meals, *m)
	return nil
}

func (r *InMemoryRepository) MealsByUser(_ context.Context, userID string) ([]Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Meal{}
	for _, m := range r.meals {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MealsSince(_ context.Context, userID string, since time.Time) ([]Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Meal{}
	for _, m := range r.meals {
		if m.UserID == userID && !m.Timestamp.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) LogExercise(_ context.Context, e *ExerciseLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	r.exercises = append(r.exercises, *e)
	return nil
}

func (r *InMemoryRepository) LogWater(_ context.Context, w *WaterLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	r.waters = append(r.waters, *w)
	return nil
}

func (r *InMemoryRepository) LogWeight(_ context.Context, w *WeightLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	r.weights = append(r.weights, *w)
	return nil
}

func (r *InMemoryRepository) ExercisesSince(_ context.Context, userID string, since time.Time) ([]ExerciseLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []ExerciseLog{}
	for _, e := range r.exercises {
		if e.UserID == userID && !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) WaterSince(_ context.Context, userID string, since time.Time) ([]WaterLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []WaterLog{}
	for _, w := range r.waters {
		if w.UserID == userID && !w.Timestamp.Before(since) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) LatestWeight(_ context.Context, userID string) (*WeightLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *WeightLog
	for i := range r.weights {
		w := r.weights[i]
		if w.UserID != userID {
			continue
		}
		if latest == nil || w.Timestamp.After(latest.Timestamp) {
			latest = &w
		}
	}
	return latest, nil
}
