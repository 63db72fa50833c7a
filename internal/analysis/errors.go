package analysis

import "errors"

// Sentinel errors used to classify failures at the pipeline boundary.
var (
	// ErrInvalidImage marks input rejected before any model call.
	ErrInvalidImage = errors.New("invalid image")
	// ErrEmptyIngredients marks a recalculation request without ingredient text.
	ErrEmptyIngredients = errors.New("ingredient text is empty")
	// ErrEmptyResponse marks an upstream call that returned no usable text.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrMalformedResponse marks a response that failed structural validation.
	ErrMalformedResponse = errors.New("malformed model response")
)
