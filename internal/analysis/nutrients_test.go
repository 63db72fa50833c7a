package analysis

import (
	"testing"
)

func TestEnsureRequiredNutrients(t *testing.T) {
	t.Run("SynthesizesMissingNutrients", func(t *testing.T) {
		input := []Record{{Name: "Calories", Quantity: 450, Unit: "kcal", Reasoning: "estimated"}}

		out := EnsureRequiredNutrients(input)
		if len(out) != 7 {
			t.Fatalf("Expected exactly 7 records, got %d", len(out))
		}
		if out[0].Name != "Calories" || out[0].Quantity != 450 {
			t.Errorf("Provided nutrient must be preserved, got %+v", out[0])
		}
		for _, rec := range out[1:] {
			if rec.Quantity != 0 {
				t.Errorf("Synthesized %s must have quantity 0, got %v", rec.Name, rec.Quantity)
			}
			if rec.Reasoning != SentinelReasoning {
				t.Errorf("Synthesized %s must carry sentinel reasoning, got %q", rec.Name, rec.Reasoning)
			}
		}
	})

	t.Run("CanonicalOrder", func(t *testing.T) {
		out := EnsureRequiredNutrients(nil)
		for i, req := range RequiredNutrients {
			if out[i].Name != req.Name {
				t.Errorf("Position %d: expected %s, got %s", i, req.Name, out[i].Name)
			}
			if out[i].Unit != req.Unit {
				t.Errorf("%s: expected unit %s, got %s", req.Name, req.Unit, out[i].Unit)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := EnsureRequiredNutrients([]Record{
			{Name: "Protein", Quantity: 20, Unit: "g", Reasoning: "chicken"},
		})
		second := EnsureRequiredNutrients(first)
		if len(second) != len(first) {
			t.Fatalf("Second pass changed record count: %d -> %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("Record %d changed on second pass: %+v != %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("DuplicatesLastWriteWins", func(t *testing.T) {
		out := EnsureRequiredNutrients([]Record{
			{Name: "Calories", Quantity: 300, Unit: "kcal", Reasoning: "first pass"},
			{Name: "calories", Quantity: 520, Unit: "kcal", Reasoning: "revised"},
		})
		if out[0].Quantity != 520 {
			t.Errorf("Expected later duplicate to win, got quantity %v", out[0].Quantity)
		}
	})

	t.Run("KeepsExtraNutrients", func(t *testing.T) {
		out := EnsureRequiredNutrients([]Record{
			{Name: "Cholesterol", Quantity: 30, Unit: "mg", Reasoning: "eggs"},
		})
		if len(out) != 8 {
			t.Fatalf("Expected 7 required plus 1 extra, got %d", len(out))
		}
		last := out[len(out)-1]
		if last.Name != "Cholesterol" {
			t.Errorf("Extra nutrient must follow the required set, got %s last", last.Name)
		}
	})
}
