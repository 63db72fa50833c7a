package recipe

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-analyzer/internal/analysis"
)

// Recipe mirrors one row of the recipes dataset. Content fields keep the
// dataset's column names so existing collections decode without migration.
type Recipe struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"Name" json:"name"`
	RecipeIngredientParts string             `bson:"RecipeIngredientParts" json:"ingredient_parts"`
	Calories              float64            `bson:"Calories" json:"calories"`
	FatContent            float64            `bson:"FatContent" json:"fat_content"`
	SaturatedFatContent   float64            `bson:"SaturatedFatContent" json:"saturated_fat_content"`
	CholesterolContent    float64            `bson:"CholesterolContent" json:"cholesterol_content"`
	SodiumContent         float64            `bson:"SodiumContent" json:"sodium_content"`
	CarbohydrateContent   float64            `bson:"CarbohydrateContent" json:"carbohydrate_content"`
	FiberContent          float64            `bson:"FiberContent" json:"fiber_content"`
	SugarContent          float64            `bson:"SugarContent" json:"sugar_content"`
	ProteinContent        float64            `bson:"ProteinContent" json:"protein_content"`
}

// NutritionLines renders the recipe's nutrition as a pipe-formatted block
// covering the full required vocabulary, so a stored recipe can stand in
// for a failed estimation.
func (r *Recipe) NutritionLines() string {
	reason := "From recipe: " + r.Name
	records := []analysis.Record{
		{Name: "Calories", Quantity: r.Calories, Unit: "kcal", Reasoning: reason},
		{Name: "Protein", Quantity: r.ProteinContent, Unit: "g", Reasoning: reason},
		{Name: "Fat", Quantity: r.FatContent, Unit: "g", Reasoning: reason},
		{Name: "Carbohydrates", Quantity: r.CarbohydrateContent, Unit: "g", Reasoning: reason},
		{Name: "Fiber", Quantity: r.FiberContent, Unit: "g", Reasoning: reason},
		{Name: "Sugar", Quantity: r.SugarContent, Unit: "g", Reasoning: reason},
		{Name: "Sodium", Quantity: r.SodiumContent, Unit: "mg", Reasoning: reason},
		{Name: "Saturated Fat", Quantity: r.SaturatedFatContent, Unit: "g", Reasoning: reason},
		{Name: "Cholesterol", Quantity: r.CholesterolContent, Unit: "mg", Reasoning: reason},
	}
	return analysis.FormatLines(records)
}

// normalizeName is the lookup key: lowercased, single-spaced.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
