package llm

import "errors"

var (
	// ErrOllamaUnavailable means the server could not be reached at all.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput means the model answered but the text did not hold
	// the expected structure.
	ErrInvalidOutput = errors.New("invalid llm output format")

	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
