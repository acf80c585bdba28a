package recommend

import (
	"context"
	"testing"

	"github.com/picko-ai/picko/ai/mock"
	"github.com/picko-ai/picko/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendBatch_PositionalResults(t *testing.T) {
	tools := []*core.Tool{
		{Id: "a", Name: "Gamma", Category: "발표"},
		{Id: "b", Name: "Jasper", Category: "마케팅"},
		{Id: "c", Name: "Midjourney", Category: "이미지"},
	}
	provider := mock.NewMockProvider()
	r := newTestRecommender(t, newFakeSource(tools...), provider, WithPoolSize(2))

	tasks := []string{"이미지", "발표", "마케팅", "이미지", "발표"}
	results := r.RecommendBatch(context.Background(), tasks)

	require.Len(t, results, len(tasks))
	assert.Equal(t, []string{"Midjourney"}, names(results[0]))
	assert.Equal(t, []string{"Gamma"}, names(results[1]))
	assert.Equal(t, []string{"Jasper"}, names(results[2]))
	assert.Equal(t, []string{"Midjourney"}, names(results[3]))
	assert.Equal(t, []string{"Gamma"}, names(results[4]))
	assert.Equal(t, len(tasks), provider.GetMockExtractor().CallCount())
}

func TestRecommendBatch_Empty(t *testing.T) {
	r := newTestRecommender(t, newFakeSource(), nil)

	results := r.RecommendBatch(context.Background(), nil)

	assert.Empty(t, results)
}

func TestRecommendBatch_AfterRelease(t *testing.T) {
	tools := []*core.Tool{{Id: "a", Name: "Gamma", Category: "발표"}}
	r, err := NewRecommender(newFakeSource(tools...), nil)
	require.NoError(t, err)
	r.Release()

	results := r.RecommendBatch(context.Background(), []string{"발표"})

	require.Len(t, results, 1)
	assert.Equal(t, tools, results[0])
}
