// Package auth covers account registration, login and the per-user profile
// document, plus the JWT session tokens the protected routes check.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrMissingFields      = errors.New("missing required fields")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Service implements the account operations on top of a UserRepository.
type Service struct {
	users    UserRepository
	profiles ProfileRepository
}

func NewService(users UserRepository, profiles ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles}
}

// Register creates an account with a bcrypt-hashed password. The email is
// the unique handle; registering it twice returns ErrEmailExists.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SaveProfile merges the given fields into the user's profile document,
// creating it on first write.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile Profile) error {
	if userID == "" {
		return ErrMissingFields
	}
	clean := Profile{"user_id": userID}
	for k, v := range profile {
		if k == "user_id" || k == "_id" {
			continue
		}
		clean[k] = v
	}
	return s.profiles.Upsert(ctx, userID, clean)
}

// GetProfile returns the user's profile document.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}
	return s.profiles.Find(ctx, userID)
}
