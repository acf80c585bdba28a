package ai

import (
	"context"

	"github.com/picko-ai/picko/core"
)

// KeywordExtractor turns a free-text task into search keywords.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords asks the model for 5-10 keywords covering the task,
	// mixing Korean and English terms, synonyms and categories.
	// Returns an error if the model fails or its answer holds no parseable keyword list.
	ExtractKeywords(ctx context.Context, task string) ([]string, error)
}

// Ranker picks the tools that best fit a task from a numbered listing.
// Implementations must be thread-safe for concurrent use.
type Ranker interface {
	// RankTools shows tools to the model as a 1-based numbered listing and returns
	// its picks in the order the model gave them. ToolNumber values are not
	// range-checked; callers resolve them against tools.
	// Returns an error if the model fails or its answer cannot be parsed.
	RankTools(ctx context.Context, task string, tools []*core.Tool) ([]Recommendation, error)
}

// Recommendation is one pick of the ranker.
type Recommendation struct {
	// Rank is the position the model assigned, 1 = best.
	Rank int

	// ToolNumber is the 1-based index into the listing sent to the model.
	ToolNumber int

	// Reason is the model's short justification, shown to users as-is.
	Reason string
}

// AIProvider aggregates the generative services for initialization and lifecycle management.
// Both services share one model client and one circuit breaker.
type AIProvider interface {
	// KeywordExtractor returns the keyword extraction service.
	KeywordExtractor() KeywordExtractor

	// Ranker returns the re-ranking service.
	Ranker() Ranker

	// Close releases resources held by the provider and its services.
	Close() error
}
