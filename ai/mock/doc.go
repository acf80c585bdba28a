// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.KeywordExtractor, ai.Ranker
// and ai.AIProvider for use in unit tests. The mocks run without an external
// model and behave deterministically.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	keywords, err := provider.KeywordExtractor().ExtractKeywords(ctx, "write a report")
//
//	// Custom behavior injection
//	ranker := mock.NewMockRanker().
//	    WithRankToolsFunc(func(ctx context.Context, task string, tools []*core.Tool) ([]ai.Recommendation, error) {
//	        return []ai.Recommendation{{Rank: 1, ToolNumber: 3}}, nil
//	    })
//
//	// Check call counts
//	count := ranker.CallCount()
//
// # Default Behavior
//
//   - MockKeywordExtractor: lowercased whitespace-separated words of the task
//   - MockRanker: picks the listing in order, at most 10
//   - MockProvider: aggregates a mock extractor and ranker
//
// Call counters are safe for concurrent use.
package mock
