package feedback

import "errors"

var (
	// ErrRepositoryRequired is returned when no interaction repository is provided.
	ErrRepositoryRequired = errors.New("interaction repository required")
)
