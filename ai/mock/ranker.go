package mock

import (
	"context"
	"sync/atomic"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/core"
)

// MockRanker is a test double for ai.Ranker.
type MockRanker struct {
	// RankToolsFunc is called by RankTools if set.
	// If nil, returns the first 10 tools of the listing in order.
	RankToolsFunc func(ctx context.Context, task string, tools []*core.Tool) ([]ai.Recommendation, error)

	callCount atomic.Int64
}

var _ ai.Ranker = (*MockRanker)(nil)

// NewMockRanker creates a mock ranker with default behavior.
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// WithRankToolsFunc sets custom behavior and returns the mock for chaining.
func (m *MockRanker) WithRankToolsFunc(fn func(ctx context.Context, task string, tools []*core.Tool) ([]ai.Recommendation, error)) *MockRanker {
	m.RankToolsFunc = fn
	return m
}

// RankTools implements ai.Ranker.
func (m *MockRanker) RankTools(ctx context.Context, task string, tools []*core.Tool) ([]ai.Recommendation, error) {
	m.callCount.Add(1)

	if m.RankToolsFunc != nil {
		return m.RankToolsFunc(ctx, task, tools)
	}

	n := min(len(tools), 10)
	picks := make([]ai.Recommendation, 0, n)
	for i := 0; i < n; i++ {
		picks = append(picks, ai.Recommendation{Rank: i + 1, ToolNumber: i + 1})
	}
	return picks, nil
}

// CallCount returns the number of RankTools calls.
func (m *MockRanker) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom behavior.
func (m *MockRanker) Reset() {
	m.callCount.Store(0)
	m.RankToolsFunc = nil
}

// Picks builds recommendations for the given 1-based tool numbers, ranked in order.
func Picks(toolNumbers ...int) []ai.Recommendation {
	picks := make([]ai.Recommendation, len(toolNumbers))
	for i, n := range toolNumbers {
		picks[i] = ai.Recommendation{Rank: i + 1, ToolNumber: n}
	}
	return picks
}
