package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/llm"
)

// ClippedRecipe is the result of clipping a recipe URL: a title plus an
// ingredient block in the standard pipe-line format, ready to feed into a
// nutrition recalculation.
type ClippedRecipe struct {
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	SourceURL   string `json:"source_url"`
}

// Clipper fetches a recipe page, strips it down to text and has the model
// extract the ingredient list.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

const clipPromptFormat = `You are a recipe extraction expert. Extract the recipe from the following page text.

Output the recipe title on the first line, then one line per ingredient in this exact format:
Ingredient | Quantity Number | Unit | Role in the recipe

Example:
Classic Pancakes
Flour | 200 | g | Batter base
Milk | 300 | ml | Batter liquid
Butter | 30 | g | For the pan

Quantity Number must be numeric only. Skip decorative or optional garnish notes.

Page text:
%s`

// ClipURL fetches the URL and extracts its ingredient block.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*ClippedRecipe, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	resp, err := c.textGen.GenerateContent(ctx, fmt.Sprintf(clipPromptFormat, content))
	if err != nil {
		return nil, fmt.Errorf("ingredient extraction failed: %w", err)
	}

	title, block := splitClipResponse(resp.Content)
	records, _ := analysis.ParseLines(block)
	if len(records) == 0 {
		return nil, errors.New("no parseable ingredient lines in extraction")
	}

	return &ClippedRecipe{
		Title:       title,
		Ingredients: analysis.FormatLines(records),
		SourceURL:   url,
	}, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

// splitClipResponse separates the title line from the ingredient lines.
func splitClipResponse(text string) (title, block string) {
	var rest []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if title == "" && !strings.Contains(line, "|") {
			title = strings.Trim(line, "*# ")
			continue
		}
		rest = append(rest, line)
	}
	return title, strings.Join(rest, "\n")
}
