package api

import "errors"

var (
	// ErrRecommenderRequired is returned when no recommender is provided.
	ErrRecommenderRequired = errors.New("recommender required")

	// ErrRecorderRequired is returned when no feedback recorder is provided.
	ErrRecorderRequired = errors.New("feedback recorder required")
)

// Error codes sent in ErrorResponse.Code.
const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidation       = "VALIDATION_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnhealthy        = "UNHEALTHY"
)
