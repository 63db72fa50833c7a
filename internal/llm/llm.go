package llm

import (
	"context"

	"food-analyzer/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// VisionGenerator is an interface for generating text from a prompt plus an
// inline image. mimeType is the short form used by the Gemini API ("jpeg",
// "png", "webp").
type VisionGenerator interface {
	GenerateFromImage(ctx context.Context, prompt string, mimeType string, image []byte) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
