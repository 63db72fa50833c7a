package auth

import "context"

// UserRepository is the data-access contract the service depends on.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository stores one profile document per user, upserted whole.
type ProfileRepository interface {
	Upsert(ctx context.Context, userID string, profile Profile) error
	Find(ctx context.Context, userID string) (Profile, error)
}
