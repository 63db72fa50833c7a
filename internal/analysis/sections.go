package analysis

import (
	"strings"
)

// captureState tracks which section of a response lines are being collected
// into. States are entered only by matching a header line and left only by
// matching a later header; end of input stops accumulation wherever it is.
type captureState int

const (
	captureNone captureState = iota
	captureVisible
	captureHidden
	captureNutrition
)

// sectionHeaders maps case-insensitive header substrings to capture states.
// Order matters: "hidden ingredient" must be tried before the generic
// "ingredient" match.
var sectionHeaders = []struct {
	marker string
	state  captureState
}{
	{"hidden ingredient", captureHidden},
	{"visible ingredient", captureVisible},
	{"nutrition", captureNutrition},
	{"nutrient", captureNutrition},
	{"ingredient", captureVisible},
}

// namePrefixes are labels the model sometimes puts in front of the dish
// name; they are stripped before the name is used.
var namePrefixes = []string{
	"dish name:", "dishes:", "food items:", "items:", "dish:", "food:", "name:",
}

// Sections is the output of SplitSections: the dish name plus the raw text
// captured for each logical section.
type Sections struct {
	DishName  string
	Visible   string
	Hidden    string
	Nutrition string
}

// SplitSections scans a free-form response line by line. Lines matching a
// known section header switch the capture bucket; the first non-empty,
// non-header line is the dish-name candidate regardless of bucket.
func SplitSections(text string) Sections {
	var out Sections
	var visible, hidden, nutrition []string

	state := captureNone
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if next, ok := matchHeader(line); ok {
			state = next
			continue
		}

		if out.DishName == "" && !strings.Contains(line, "|") && !isNoiseLine(line) {
			out.DishName = cleanDishName(line)
			continue
		}

		switch state {
		case captureVisible:
			visible = append(visible, line)
		case captureHidden:
			hidden = append(hidden, line)
		case captureNutrition:
			nutrition = append(nutrition, line)
		case captureNone:
			// Leading lines before any header: ingredient-shaped lines are
			// treated as visible, everything else is ignored.
			if strings.Contains(line, "|") {
				visible = append(visible, line)
			}
		}
	}

	out.Visible = strings.Join(visible, "\n")
	out.Hidden = strings.Join(hidden, "\n")
	out.Nutrition = strings.Join(nutrition, "\n")
	return out
}

func matchHeader(line string) (captureState, bool) {
	// Header lines are short labels, not data rows.
	if strings.Contains(line, "|") {
		return captureNone, false
	}
	lower := strings.ToLower(line)
	if !strings.HasSuffix(lower, ":") && len(strings.Fields(lower)) > 4 {
		return captureNone, false
	}
	for _, h := range sectionHeaders {
		if strings.Contains(lower, h.marker) {
			return h.state, true
		}
	}
	return captureNone, false
}

// cleanDishName strips label prefixes and capitalizes the first letter.
// The rest of the line is kept verbatim so multi-dish answers
// ("curry, rice and naan") survive untouched.
func cleanDishName(line string) string {
	name := strings.TrimSpace(line)
	lower := strings.ToLower(name)
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(lower, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	name = strings.Trim(name, "*# ")
	return capitalize(name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
