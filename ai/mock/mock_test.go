package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockKeywordExtractor(t *testing.T) {
	m := NewMockKeywordExtractor()
	ctx := context.Background()

	got, err := m.ExtractKeywords(ctx, "Write  a Report")
	require.NoError(t, err)
	assert.Equal(t, []string{"write", "a", "report"}, got)

	boom := errors.New("boom")
	m.WithExtractKeywordsFunc(func(context.Context, string) ([]string, error) { return nil, boom })
	_, err = m.ExtractKeywords(ctx, "x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, m.CallCount())

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	assert.Nil(t, m.ExtractKeywordsFunc)
}

func TestMockRanker(t *testing.T) {
	m := NewMockRanker()
	tools := make([]*core.Tool, 12)

	picks, err := m.RankTools(context.Background(), "task", tools)
	require.NoError(t, err)
	require.Len(t, picks, 10)
	assert.Equal(t, ai.Recommendation{Rank: 10, ToolNumber: 10}, picks[9])
	assert.Equal(t, 1, m.CallCount())
}

func TestPicks(t *testing.T) {
	assert.Equal(t, []ai.Recommendation{
		{Rank: 1, ToolNumber: 3},
		{Rank: 2, ToolNumber: 1},
	}, Picks(3, 1))
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()

	assert.Same(t, p.GetMockExtractor(), p.KeywordExtractor())
	assert.Same(t, p.GetMockRanker(), p.Ranker())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
