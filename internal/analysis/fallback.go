package analysis

import "strings"

// Static fallback blocks substituted for a stage's output when every
// attempt is exhausted. The caller always gets a well-formed, if
// approximate, result instead of an error.
const (
	fallbackDescribeBlock = "Unknown dish\n" +
		"Could not identify ingredients | 0 | g | Analysis unavailable"

	fallbackHiddenBlock = "Cooking oil | 2 | tbsp | Used for cooking dishes\n" +
		"Salt | 1 | tsp | Basic seasoning for dishes\n" +
		"Water | 250 | ml | Used for cooking rice/grains"
)

// fallbackNutritionBlock renders a complete zeroed nutrition block with the
// given reasoning, covering the full required vocabulary.
func fallbackNutritionBlock(reason string) string {
	lines := make([]string, 0, len(RequiredNutrients))
	for _, n := range RequiredNutrients {
		lines = append(lines, Record{Name: n.Name, Quantity: 0, Unit: n.Unit, Reasoning: reason}.Line())
	}
	return strings.Join(lines, "\n")
}

// failureResult builds the complete degraded Result returned when the
// pipeline cannot produce anything useful (bad input, timeout). Every field
// the response contract names is populated.
func failureResult(userID, reason string, elapsed float64) *Result {
	return &Result{
		DishPrediction:    "Analysis failed: " + reason,
		ImageDescription:  "Could not identify ingredients | 0 | g | " + reason,
		HiddenIngredients: "Could not identify | 0 | g | " + reason,
		NutritionInfo:     fallbackNutritionBlock("Analysis failed"),
		AnalysisTime:      elapsed,
		UserID:            userID,
		Status:            StatusFailure,
		Error:             reason,
	}
}
