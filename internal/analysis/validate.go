package analysis

import (
	"fmt"
	"strings"
)

// validator is a structural check a stage's raw response must pass before
// being accepted. Failing validation counts as a failed attempt, same as a
// transport error.
type validator func(text string) error

// minParseableLines accepts a response only if it contains at least n lines
// that parse into records.
func minParseableLines(n int) validator {
	return func(text string) error {
		records, _ := ParseLines(text)
		if len(records) < n {
			return fmt.Errorf("%w: %d parseable lines, want at least %d", ErrMalformedResponse, len(records), n)
		}
		return nil
	}
}

// validDescription accepts a describe response only if it yields a dish
// name and at least one parseable visible-ingredient line.
func validDescription(text string) error {
	sections := SplitSections(text)
	if sections.DishName == "" {
		return fmt.Errorf("%w: no dish name on first line", ErrMalformedResponse)
	}
	records, _ := ParseLines(sections.Visible)
	if len(records) == 0 {
		return fmt.Errorf("%w: no parseable ingredient lines", ErrMalformedResponse)
	}
	return nil
}

// validNutrition accepts a nutrition response only if at least three of the
// required nutrients parse. The rest are synthesized downstream, but fewer
// than three usually means the model ignored the format entirely.
func validNutrition(text string) error {
	records, _ := ParseLines(text)
	found := 0
	for _, rec := range records {
		if isRequired(strings.ToLower(rec.Name)) {
			found++
		}
	}
	if found < 3 {
		return fmt.Errorf("%w: only %d required nutrients present", ErrMalformedResponse, found)
	}
	return nil
}
