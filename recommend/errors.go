package recommend

import "errors"

var (
	// ErrToolSourceRequired is returned when no tool store is provided.
	ErrToolSourceRequired = errors.New("tool source required")

	// ErrInvalidConfig is returned when a limit or field list is unusable.
	ErrInvalidConfig = errors.New("invalid recommender config")

	// ErrPipelinePanic wraps a panic recovered from a collaborator.
	ErrPipelinePanic = errors.New("recommendation pipeline panicked")

	// errNoKeywords marks a model answer with an empty keyword list.
	errNoKeywords = errors.New("model returned no keywords")
)
