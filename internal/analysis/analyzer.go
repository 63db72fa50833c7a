package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"food-analyzer/internal/imaging"
	"food-analyzer/internal/llm"
	"food-analyzer/internal/shared"
)

// RecipeStore is the lookup capability the analyzer consults when the
// nutrition stage degrades: a known dish name can stand in for the model's
// estimate. Implementations return a nutrition block in the standard line
// format and whether the dish was found.
type RecipeStore interface {
	NutritionFor(ctx context.Context, dishName string) (string, bool)
}

// Options are the pipeline knobs, all caller-configurable.
type Options struct {
	MaxAttempts              int
	BackoffBase              time.Duration
	Timeout                  time.Duration
	IncludeHiddenInNutrition bool
}

// Analyzer drives the deterministic three-stage prompt pipeline:
// describe → hidden ingredients → nutrition. The stages are strictly
// sequential because each consumes the previous stage's text. Stateless
// per request; safe for concurrent use.
type Analyzer struct {
	vision  llm.VisionGenerator
	textGen llm.TextGenerator
	recipes RecipeStore // may be nil
	opts    Options
}

// NewAnalyzer creates an Analyzer. recipes may be nil, in which case a
// degraded nutrition stage falls straight back to the static block.
func NewAnalyzer(vision llm.VisionGenerator, textGen llm.TextGenerator, recipes RecipeStore, opts Options) *Analyzer {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	return &Analyzer{
		vision:  vision,
		textGen: textGen,
		recipes: recipes,
		opts:    opts,
	}
}

// Analyze runs the full pipeline for one image. The returned error is
// non-nil only for invalid input, rejected before any model call; every
// other failure mode degrades into a complete, schema-valid Result.
func (a *Analyzer) Analyze(ctx context.Context, image []byte, userID, customPrompt string) (*Result, error) {
	start := time.Now()

	jpegData, err := imaging.Prepare(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	log.Printf("🤖 Starting image analysis for user: %s", userID)
	metas := make([]shared.StageMeta, 0, 3)

	// Stage 1: dish name and visible ingredients from the image.
	describe := a.runStage(ctx, "Describe", func(ctx context.Context) (llm.ContentResponse, error) {
		prompt, err := buildDescribePrompt(describePromptData{CustomPrompt: customPrompt})
		if err != nil {
			return llm.ContentResponse{}, err
		}
		return a.vision.GenerateFromImage(ctx, prompt, "jpeg", jpegData)
	}, validDescription, fallbackDescribeBlock)
	metas = append(metas, describe.Meta)

	sections := SplitSections(describe.Text)
	dishNames := sections.DishName
	visibleRecords, skipped := ParseLines(sections.Visible)
	if skipped > 0 {
		log.Printf("⚠️ Describe stage: dropped %d unparseable lines", skipped)
	}
	visibleText := FormatLines(visibleRecords)

	if timedOut(ctx) {
		return a.timeoutResult(userID, start, metas), nil
	}

	// Stage 2: hidden ingredients inferred from the dish and visible list.
	hidden := a.runStage(ctx, "HiddenIngredients", func(ctx context.Context) (llm.ContentResponse, error) {
		prompt, err := buildHiddenPrompt(hiddenPromptData{
			DishNames:          dishNames,
			VisibleIngredients: visibleText,
		})
		if err != nil {
			return llm.ContentResponse{}, err
		}
		return a.textGen.GenerateContent(ctx, prompt)
	}, minParseableLines(1), fallbackHiddenBlock)
	metas = append(metas, hidden.Meta)

	hiddenRecords, _ := ParseLines(hidden.Text)
	hiddenText := FormatLines(hiddenRecords)

	if timedOut(ctx) {
		return a.timeoutResult(userID, start, metas), nil
	}

	// Stage 3: nutrition totals for the whole meal.
	nutritionHidden := ""
	if a.opts.IncludeHiddenInNutrition {
		nutritionHidden = hiddenText
	}
	nutrition := a.runStage(ctx, "Nutrition", func(ctx context.Context) (llm.ContentResponse, error) {
		prompt, err := buildNutritionPrompt(nutritionPromptData{
			DishNames:          dishNames,
			VisibleIngredients: visibleText,
			HiddenIngredients:  nutritionHidden,
		})
		if err != nil {
			return llm.ContentResponse{}, err
		}
		return a.textGen.GenerateContent(ctx, prompt)
	}, validNutrition, fallbackNutritionBlock("Analysis failed"))
	metas = append(metas, nutrition.Meta)

	nutritionText := nutrition.Text
	if nutrition.Meta.Degraded && a.recipes != nil {
		// A known dish beats a zeroed block.
		if block, ok := a.recipes.NutritionFor(context.WithoutCancel(ctx), dishNames); ok {
			log.Printf("📖 Nutrition stage degraded, using recipe lookup for %q", dishNames)
			nutritionText = block
		}
	}

	nutritionRecords, _ := ParseLines(nutritionText)
	nutritionText = FormatLines(EnsureRequiredNutrients(nutritionRecords))

	if timedOut(ctx) {
		return a.timeoutResult(userID, start, metas), nil
	}

	elapsed := time.Since(start).Seconds()
	log.Printf("✅ Analysis completed in %.2f seconds (%d visible, %d hidden)", elapsed, len(visibleRecords), len(hiddenRecords))

	return &Result{
		DishPrediction:    dishNames,
		ImageDescription:  visibleText,
		HiddenIngredients: hiddenText,
		NutritionInfo:     nutritionText,
		AnalysisTime:      elapsed,
		UserID:            userID,
		Status:            StatusSuccess,
		Stages:            metas,
	}, nil
}

// Recalculate produces a fresh nutrition block from a modified ingredient
// block, independent of any image. Empty input fails fast without an
// outbound call; upstream failures degrade to a zeroed block.
func (a *Analyzer) Recalculate(ctx context.Context, ingredientsText string) (string, shared.StageMeta, error) {
	if strings.TrimSpace(ingredientsText) == "" {
		return "", shared.StageMeta{StageName: "Recalculate"}, ErrEmptyIngredients
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	out := a.runStage(ctx, "Recalculate", func(ctx context.Context) (llm.ContentResponse, error) {
		prompt, err := buildRecalculatePrompt(recalculatePromptData{Ingredients: ingredientsText})
		if err != nil {
			return llm.ContentResponse{}, err
		}
		return a.textGen.GenerateContent(ctx, prompt)
	}, validNutrition, fallbackNutritionBlock("Recalculation failed"))

	records, _ := ParseLines(out.Text)
	return FormatLines(EnsureRequiredNutrients(records)), out.Meta, nil
}

func (a *Analyzer) timeoutResult(userID string, start time.Time, metas []shared.StageMeta) *Result {
	log.Printf("⏰ Analysis timed out after %s for user %s", a.opts.Timeout, userID)
	res := failureResult(userID, "analysis timed out", time.Since(start).Seconds())
	res.Stages = metas
	return res
}

func timedOut(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
