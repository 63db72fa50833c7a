// Package analysis contains the core of the food analyzer: the prompt
// pipeline orchestrator that drives the generative model through the
// describe → hidden-ingredients → nutrition stages, and the structured-text
// parser that turns the model's pipe-delimited output into typed records.
package analysis

import (
	"strconv"
	"strings"
)

// Record is one parsed ingredient or nutrient line. Immutable once created.
type Record struct {
	Name      string
	Quantity  float64
	Unit      string
	Reasoning string
}

// Line serializes the record back into the wire format used everywhere:
// "<Name> | <Quantity> | <Unit> | <Reasoning>". Quantities use '.' as the
// decimal point and integers render without a trailing ".0".
func (r Record) Line() string {
	return r.Name + " | " + FormatQuantity(r.Quantity) + " | " + r.Unit + " | " + r.Reasoning
}

// FormatQuantity renders a quantity in the shortest decimal form.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatLines joins records into a newline-separated block.
func FormatLines(records []Record) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Line())
	}
	return strings.Join(lines, "\n")
}
