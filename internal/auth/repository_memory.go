package auth

import (
	"context"
	"maps"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryUserRepository keeps users in a map, for tests and local runs.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*User)}
}

func (r *InMemoryUserRepository) Save(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[email]
	return ok, nil
}

// InMemoryProfileRepository keeps profiles in a map, for tests.
type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{profiles: make(map[string]Profile)}
}

func (r *InMemoryProfileRepository) Upsert(_ context.Context, userID string, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.profiles[userID]
	if !ok {
		existing = Profile{}
		r.profiles[userID] = existing
	}
	maps.Copy(existing, profile)
	return nil
}

func (r *InMemoryProfileRepository) Find(_ context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	out := Profile{}
	maps.Copy(out, profile)
	return out, nil
}
