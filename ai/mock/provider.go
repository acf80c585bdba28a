package mock

import "github.com/picko-ai/picko/ai"

// MockProvider aggregates a mock extractor and ranker.
type MockProvider struct {
	extractor *MockKeywordExtractor
	ranker    *MockRanker
	closed    bool
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		extractor: NewMockKeywordExtractor(),
		ranker:    NewMockRanker(),
	}
}

// NewMockProviderWithServices creates a provider with the given mock services.
func NewMockProviderWithServices(extractor *MockKeywordExtractor, ranker *MockRanker) *MockProvider {
	return &MockProvider{
		extractor: extractor,
		ranker:    ranker,
	}
}

// KeywordExtractor implements ai.AIProvider.
func (p *MockProvider) KeywordExtractor() ai.KeywordExtractor {
	return p.extractor
}

// Ranker implements ai.AIProvider.
func (p *MockProvider) Ranker() ai.Ranker {
	return p.ranker
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockExtractor returns the concrete extractor for assertions.
func (p *MockProvider) GetMockExtractor() *MockKeywordExtractor {
	return p.extractor
}

// GetMockRanker returns the concrete ranker for assertions.
func (p *MockProvider) GetMockRanker() *MockRanker {
	return p.ranker
}
