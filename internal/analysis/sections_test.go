package analysis

import (
	"testing"
)

// countLines reparses a captured section through the record parser so the
// assertions work on parseable rows rather than raw text.
func countLines(t *testing.T, section string) int {
	t.Helper()
	records, skipped := ParseLines(section)
	if skipped != 0 {
		t.Errorf("Section contained %d unparseable lines: %q", skipped, section)
	}
	return len(records)
}

func TestSplitSections(t *testing.T) {
	t.Run("FullStructuredResponse", func(t *testing.T) {
		input := "chicken biryani\n\nVisible Ingredients:\nRice | 200 | g | main component\nChicken | 150 | g | pieces on top\n\nHidden Ingredients:\nCooking oil | 2 | tbsp | frying medium"

		sections := SplitSections(input)
		if sections.DishName != "Chicken biryani" {
			t.Errorf("Expected dish name 'Chicken biryani', got '%s'", sections.DishName)
		}
		if got := countLines(t, sections.Visible); got != 2 {
			t.Fatalf("Expected 2 visible lines, got %d", got)
		}
		if sections.Hidden != "Cooking oil | 2 | tbsp | frying medium" {
			t.Errorf("Unexpected hidden section: %q", sections.Hidden)
		}
	})

	t.Run("StripsDishNamePrefix", func(t *testing.T) {
		cases := map[string]string{
			"Dish: pasta carbonara":      "Pasta carbonara",
			"Food items: rice and beans": "Rice and beans",
			"Name: omelette":             "Omelette",
		}
		for input, want := range cases {
			sections := SplitSections(input)
			if sections.DishName != want {
				t.Errorf("SplitSections(%q).DishName = %q, want %q", input, sections.DishName, want)
			}
		}
	})

	t.Run("MultiDishNameKeepsRemainderVerbatim", func(t *testing.T) {
		sections := SplitSections("Dish: curry, rice and naan")
		if sections.DishName != "Curry, rice and naan" {
			t.Errorf("Expected 'Curry, rice and naan', got %q", sections.DishName)
		}
	})

	t.Run("PipeLinesBeforeHeaderAreVisible", func(t *testing.T) {
		input := "Fried rice\nRice | 200 | g | base\nEgg | 1 | piece | scrambled in"
		sections := SplitSections(input)
		if got := countLines(t, sections.Visible); got != 2 {
			t.Errorf("Expected 2 visible lines without an explicit header, got %d", got)
		}
	})

	t.Run("HiddenHeaderBeatsGenericIngredientHeader", func(t *testing.T) {
		input := "Soup\nHidden ingredients:\nSalt | 1 | tsp | seasoning"
		sections := SplitSections(input)
		if sections.Visible != "" {
			t.Errorf("Expected nothing captured as visible, got %q", sections.Visible)
		}
		if got := countLines(t, sections.Hidden); got != 1 {
			t.Errorf("Expected line captured as hidden, got %d", got)
		}
	})

	t.Run("NutritionSection", func(t *testing.T) {
		input := "Nutrition:\nCalories | 450 | kcal | estimated total"
		sections := SplitSections(input)
		if sections.Nutrition != "Calories | 450 | kcal | estimated total" {
			t.Fatalf("Unexpected nutrition section: %q", sections.Nutrition)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		sections := SplitSections("")
		if sections.DishName != "" || sections.Visible != "" || sections.Hidden != "" || sections.Nutrition != "" {
			t.Errorf("Expected empty sections, got %+v", sections)
		}
	})
}
