package analysis

import (
	"context"
	"log"
	"strings"
	"time"

	"food-analyzer/internal/llm"
	"food-analyzer/internal/shared"
)

// stageCall performs one attempt of a pipeline stage and returns the raw
// model response.
type stageCall func(ctx context.Context) (llm.ContentResponse, error)

// stageOutcome is the accepted (or substituted) text of a stage plus its
// execution metadata.
type stageOutcome struct {
	Text string
	Meta shared.StageMeta
}

// runStage is the one generic retrying-call-with-fallback operation every
// stage goes through: up to maxAttempts calls with exponential backoff,
// each response checked by validate, and the static fallback substituted
// when attempts exhaust. Transport errors, empty payloads and validation
// failures all count as failed attempts. A cancelled context short-circuits
// straight to the fallback so the pipeline's timeout is honored.
func (a *Analyzer) runStage(ctx context.Context, name string, call stageCall, validate validator, fallback string) stageOutcome {
	start := time.Now()
	meta := shared.StageMeta{StageName: name}

	backoff := a.opts.BackoffBase
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		meta.Attempts = attempt

		resp, err := call(ctx)
		if err == nil && strings.TrimSpace(resp.Content) == "" {
			err = ErrEmptyResponse
		}
		if err == nil && validate != nil {
			err = validate(resp.Content)
		}
		if err == nil {
			meta.Usage = resp.Usage
			meta.Latency = time.Since(start)
			return stageOutcome{Text: resp.Content, Meta: meta}
		}

		log.Printf("⚠️ %s stage attempt %d/%d failed: %v", name, attempt, a.opts.MaxAttempts, err)

		if attempt < a.opts.MaxAttempts && !sleepCtx(ctx, backoff) {
			break
		}
		backoff *= 2
	}

	log.Printf("❌ %s stage exhausted, using fallback block", name)
	meta.Degraded = true
	meta.Latency = time.Since(start)
	return stageOutcome{Text: fallback, Meta: meta}
}

// sleepCtx waits for d or until ctx is done; reports whether the full wait
// elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
