package ai

import "errors"

var (
	// ErrUnavailable indicates no generative model can serve the request:
	// none is configured or its circuit breaker is open.
	ErrUnavailable = errors.New("generative model unavailable")

	// ErrNoJSON indicates the model answer contained no JSON object.
	ErrNoJSON = errors.New("no JSON object in model response")

	// ErrMalformedResponse indicates the model answer did not match the expected shape.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("empty model response")
)
