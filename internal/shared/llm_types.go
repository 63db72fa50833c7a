package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// StageMeta holds operational metadata for one pipeline stage execution.
type StageMeta struct {
	StageName string
	Usage     TokenUsage
	Latency   time.Duration
	Attempts  int
	Degraded  bool
}
