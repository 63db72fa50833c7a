package recipe

import (
	"context"
	"strings"
	"testing"

	"food-analyzer/internal/analysis"
)

func sampleRecipe() Recipe {
	return Recipe{
		Name:                  "Chicken Curry",
		RecipeIngredientParts: `c("chicken", "onion", "curry paste")`,
		Calories:              520,
		FatContent:            18,
		SaturatedFatContent:   5,
		CholesterolContent:    85,
		SodiumContent:         780,
		CarbohydrateContent:   45,
		FiberContent:          4,
		SugarContent:          8,
		ProteinContent:        38,
	}
}

func TestNutritionLines(t *testing.T) {
	r := sampleRecipe()
	records, skipped := analysis.ParseLines(r.NutritionLines())
	if skipped != 0 {
		t.Fatalf("Rendered block must be fully parseable, skipped %d lines", skipped)
	}
	if len(records) != 9 {
		t.Fatalf("Expected 9 nutrient lines, got %d", len(records))
	}
	if records[0].Name != "Calories" || records[0].Quantity != 520 {
		t.Errorf("Unexpected first record: %+v", records[0])
	}

	// The block must survive the required-nutrient pass unchanged in count.
	ensured := analysis.EnsureRequiredNutrients(records)
	if len(ensured) != 9 {
		t.Errorf("Expected no synthesized records for a complete block, got %d", len(ensured))
	}
}

func TestCatalogLookup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.Insert(ctx, []Recipe{sampleRecipe()}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	catalog := NewCatalog(store)

	t.Run("CaseInsensitiveHit", func(t *testing.T) {
		block, ok := catalog.NutritionFor(ctx, "chicken  CURRY")
		if !ok {
			t.Fatal("Expected a lookup hit")
		}
		if !strings.Contains(block, "Calories | 520 | kcal") {
			t.Errorf("Unexpected block:\n%s", block)
		}
	})

	t.Run("Miss", func(t *testing.T) {
		if _, ok := catalog.NutritionFor(ctx, "unknown dish"); ok {
			t.Error("Expected a miss for an unknown dish")
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		if _, ok := catalog.NutritionFor(ctx, ""); ok {
			t.Error("Expected a miss for an empty name")
		}
	})
}

func TestReadCSV(t *testing.T) {
	const data = `Name,RecipeIngredientParts,Calories,FatContent,SaturatedFatContent,CholesterolContent,SodiumContent,CarbohydrateContent,FiberContent,SugarContent,ProteinContent
Chicken Curry,"c(""chicken"", ""onion"")",520,18,5,85,780,45,4,8,38
,"orphan row",100,1,1,1,1,1,1,1,1
Broken Row,"bad numbers",abc,18,5,85,780,45,4,8,38
Lentil Soup,"c(""lentils"", ""carrot"")",310,6,1,0,620,48,12,6,18
`

	recipes, skipped, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(recipes))
	}
	if skipped != 2 {
		t.Errorf("Expected 2 skipped rows, got %d", skipped)
	}
	if recipes[0].Name != "Chicken Curry" || recipes[0].Calories != 520 {
		t.Errorf("Unexpected first recipe: %+v", recipes[0])
	}
	if recipes[1].FiberContent != 12 {
		t.Errorf("Unexpected fiber for second recipe: %v", recipes[1].FiberContent)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("Name,Calories\nA,100\n"))
	if err == nil {
		t.Fatal("Expected an error for a missing column")
	}
}
