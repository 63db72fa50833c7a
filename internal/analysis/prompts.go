package analysis

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed describe_prompt.md
var describePrompt string

//go:embed hidden_prompt.md
var hiddenPrompt string

//go:embed nutrition_prompt.md
var nutritionPrompt string

//go:embed recalculate_prompt.md
var recalculatePrompt string

type describePromptData struct {
	CustomPrompt string
}

type hiddenPromptData struct {
	DishNames          string
	VisibleIngredients string
}

type nutritionPromptData struct {
	DishNames          string
	VisibleIngredients string
	HiddenIngredients  string
}

type recalculatePromptData struct {
	Ingredients string
}

func buildDescribePrompt(data describePromptData) (string, error) {
	return renderPrompt("describe", describePrompt, data)
}

func buildHiddenPrompt(data hiddenPromptData) (string, error) {
	return renderPrompt("hidden", hiddenPrompt, data)
}

func buildNutritionPrompt(data nutritionPromptData) (string, error) {
	return renderPrompt("nutrition", nutritionPrompt, data)
}

func buildRecalculatePrompt(data recalculatePromptData) (string, error) {
	return renderPrompt("recalculate", recalculatePrompt, data)
}

func renderPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
