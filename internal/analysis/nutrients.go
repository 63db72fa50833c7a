package analysis

import (
	"strings"
)

// requiredNutrient is one entry of the fixed nutrient vocabulary every
// nutrition block must cover.
type requiredNutrient struct {
	Name string
	Unit string
}

// RequiredNutrients is the canonical vocabulary, in output order. The
// optional extras (Saturated Fat, Cholesterol) pass through when present
// but are never synthesized.
var RequiredNutrients = []requiredNutrient{
	{"Calories", "kcal"},
	{"Protein", "g"},
	{"Fat", "g"},
	{"Carbohydrates", "g"},
	{"Fiber", "g"},
	{"Sugar", "g"},
	{"Sodium", "mg"},
}

// SentinelReasoning marks a synthesized nutrient the model did not deliver.
const SentinelReasoning = "Not determined"

// EnsureRequiredNutrients guarantees the returned list covers the full
// required vocabulary: missing nutrients are synthesized with a zero value
// and the sentinel reasoning. Accumulation is name-keyed, so duplicate
// names in the input resolve last-write-wins. Output order is the canonical
// vocabulary first, then any extras in input order.
func EnsureRequiredNutrients(records []Record) []Record {
	byName := make(map[string]Record, len(records))
	var extraOrder []string
	for _, rec := range records {
		key := strings.ToLower(rec.Name)
		if _, seen := byName[key]; !seen && !isRequired(key) {
			extraOrder = append(extraOrder, key)
		}
		byName[key] = rec
	}

	out := make([]Record, 0, len(RequiredNutrients)+len(extraOrder))
	for _, want := range RequiredNutrients {
		if rec, ok := byName[strings.ToLower(want.Name)]; ok {
			out = append(out, rec)
			continue
		}
		out = append(out, Record{
			Name:      want.Name,
			Quantity:  0,
			Unit:      want.Unit,
			Reasoning: SentinelReasoning,
		})
	}
	for _, key := range extraOrder {
		out = append(out, byName[key])
	}
	return out
}

func isRequired(lowerName string) bool {
	for _, want := range RequiredNutrients {
		if strings.ToLower(want.Name) == lowerName {
			return true
		}
	}
	return false
}
