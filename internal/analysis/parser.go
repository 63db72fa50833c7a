package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes why a single line was rejected.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable line %q: %s", e.Line, e.Reason)
}

// ParseLine parses one pipe-delimited line into a Record. A line qualifies
// only if it splits into exactly four columns and the quantity column is
// numeric; anything else is a ParseError.
func ParseLine(line string) (Record, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return Record{}, &ParseError{Line: line, Reason: fmt.Sprintf("expected 4 columns, got %d", len(parts))}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	qty, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Record{}, &ParseError{Line: line, Reason: "quantity is not numeric"}
	}

	return Record{
		Name:      parts[0],
		Quantity:  qty,
		Unit:      parts[2],
		Reasoning: parts[3],
	}, nil
}

// ParseLines parses every line of a block, collecting the records that
// qualify and counting the ones that were skipped. Malformed or garbled
// model output must never break the pipeline, so rejected lines are simply
// dropped; the skip count lets callers log or assert on the leniency.
func ParseLines(text string) ([]Record, int) {
	records := []Record{}
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isNoiseLine(line) {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

// isNoiseLine reports markdown decoration the model sometimes wraps its
// answer in: headers, bold markers, horizontal rules.
func isNoiseLine(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "**") ||
		strings.HasPrefix(line, "```") ||
		strings.Contains(line, "------")
}
