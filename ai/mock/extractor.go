package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/picko-ai/picko/ai"
)

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, splits the task into lowercased words.
	ExtractKeywordsFunc func(ctx context.Context, task string) ([]string, error)

	callCount atomic.Int64
}

var _ ai.KeywordExtractor = (*MockKeywordExtractor)(nil)

// NewMockKeywordExtractor creates a mock extractor with default behavior.
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// WithExtractKeywordsFunc sets custom behavior and returns the mock for chaining.
func (m *MockKeywordExtractor) WithExtractKeywordsFunc(fn func(ctx context.Context, task string) ([]string, error)) *MockKeywordExtractor {
	m.ExtractKeywordsFunc = fn
	return m
}

// ExtractKeywords implements ai.KeywordExtractor.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, task string) ([]string, error) {
	m.callCount.Add(1)

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, task)
	}

	return strings.Fields(strings.ToLower(task)), nil
}

// CallCount returns the number of ExtractKeywords calls.
func (m *MockKeywordExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom behavior.
func (m *MockKeywordExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractKeywordsFunc = nil
}
