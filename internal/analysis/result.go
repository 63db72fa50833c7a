package analysis

import (
	"food-analyzer/internal/shared"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Result is the complete outcome of one image analysis, in the shape the
// mobile client consumes. The three text blocks use the
// "Name | Qty | Unit | Reasoning" line format throughout; NutritionInfo
// always covers the full required nutrient vocabulary.
type Result struct {
	DishPrediction    string  `json:"dish_prediction"`
	ImageDescription  string  `json:"image_description"`
	HiddenIngredients string  `json:"hidden_ingredients"`
	NutritionInfo     string  `json:"nutrition_info"`
	AnalysisTime      float64 `json:"analysis_time"`
	UserID            string  `json:"user_id"`
	Status            string  `json:"status"`
	Error             string  `json:"error,omitempty"`

	// Stages carries per-stage execution metadata for metrics recording;
	// it is not part of the response contract.
	Stages []shared.StageMeta `json:"-"`
}
