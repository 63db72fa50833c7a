package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the account record.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

// Profile is the freeform per-user profile document the mobile client
// round-trips: goals, dietary preferences, body stats. The backend stores
// whatever keys the client sends, minus the user id.
type Profile map[string]any
