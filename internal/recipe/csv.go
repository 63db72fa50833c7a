package recipe

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvColumns are the dataset columns the ingester keeps; everything else in
// the file is ignored.
var csvColumns = []string{
	"Name",
	"RecipeIngredientParts",
	"Calories",
	"FatContent",
	"SaturatedFatContent",
	"CholesterolContent",
	"SodiumContent",
	"CarbohydrateContent",
	"FiberContent",
	"SugarContent",
	"ProteinContent",
}

// ReadCSV parses the recipes dataset. Rows with a missing name or
// unparseable numeric cells are dropped and counted, mirroring the parser's
// leniency toward partial data.
func ReadCSV(r io.Reader) ([]Recipe, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	idx := make(map[string]int, len(csvColumns))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("csv is missing required column %q", col)
		}
	}

	var recipes []Recipe
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec, ok := rowToRecipe(row, idx)
		if !ok {
			skipped++
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, skipped, nil
}

func rowToRecipe(row []string, idx map[string]int) (Recipe, bool) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell("Name")
	if name == "" {
		return Recipe{}, false
	}

	nums := make(map[string]float64, 9)
	for _, col := range csvColumns[2:] {
		v, err := strconv.ParseFloat(cell(col), 64)
		if err != nil {
			return Recipe{}, false
		}
		nums[col] = v
	}

	return Recipe{
		Name:                  name,
		RecipeIngredientParts: cell("RecipeIngredientParts"),
		Calories:              nums["Calories"],
		FatContent:            nums["FatContent"],
		SaturatedFatContent:   nums["SaturatedFatContent"],
		CholesterolContent:    nums["CholesterolContent"],
		SodiumContent:         nums["SodiumContent"],
		CarbohydrateContent:   nums["CarbohydrateContent"],
		FiberContent:          nums["FiberContent"],
		SugarContent:          nums["SugarContent"],
		ProteinContent:        nums["ProteinContent"],
	}, true
}
