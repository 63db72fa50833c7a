package meal

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is the denormalized record the client saves after an analysis: the
// pipe-formatted text blocks are stored verbatim so the dashboard can
// reparse them later.
type Meal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	DishPrediction    string             `bson:"dish_prediction" json:"dish_prediction"`
	ImageDescription  string             `bson:"image_description" json:"image_description"`
	HiddenIngredients string             `bson:"hidden_ingredients" json:"hidden_ingredients"`
	NutritionInfo     string             `bson:"nutrition_info" json:"nutrition_info"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	Timestamp         time.Time          `bson:"timestamp" json:"timestamp"`
}

// ExerciseLog is one logged workout.
type ExerciseLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"user_id"`
	Activity       string             `bson:"activity" json:"activity"`
	DurationMin    float64            `bson:"duration_min" json:"duration_min"`
	CaloriesBurned float64            `bson:"calories_burned" json:"calories_burned"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}

// WaterLog is one logged drink.
type WaterLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	AmountML  float64            `bson:"amount_ml" json:"amount_ml"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// WeightLog is one weigh-in.
type WeightLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	WeightKG  float64            `bson:"weight_kg" json:"weight_kg"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// DashboardStats are the rolled-up numbers for one user's current day.
type DashboardStats struct {
	Date           string  `json:"date"`
	Meals          int     `json:"meals"`
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	FatG           float64 `json:"fat_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	WaterML        float64 `json:"water_ml"`
	ExerciseMin    float64 `json:"exercise_min"`
	CaloriesBurned float64 `json:"calories_burned"`
	LatestWeightKG float64 `json:"latest_weight_kg,omitempty"`
	NetCalories    float64 `json:"net_calories"`
}
