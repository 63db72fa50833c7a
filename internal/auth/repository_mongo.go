package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-analyzer/internal/database"
)

// MongoUserRepository persists users in the "users" collection.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *database.Mongo) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (r *MongoUserRepository) Save(ctx context.Context, user *User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

// MongoProfileRepository persists profiles in the "profiles" collection,
// one document per user keyed by user_id.
type MongoProfileRepository struct {
	col *mongo.Collection
}

func NewMongoProfileRepository(db *database.Mongo) *MongoProfileRepository {
	return &MongoProfileRepository{col: db.Collection("profiles")}
}

func (r *MongoProfileRepository) Upsert(ctx context.Context, userID string, profile Profile) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": profile},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepository) Find(ctx context.Context, userID string) (Profile, error) {
	var profile Profile
	err := r.col.FindOne(ctx,
		bson.M{"user_id": userID},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
