package newspro

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or encoded value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyResponse indicates the analyzer returned no usable text.
	ErrEmptyResponse = errors.New("empty response")
)
