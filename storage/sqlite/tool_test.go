package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTools() []*core.Tool {
	return []*core.Tool{
		{Name: "Jasper", Category: "마케팅", StrengthLocalized: "광고 문구 작성", Link: "https://jasper.ai", Free: true},
		{Name: "Gamma", Category: "프레젠테이션", StrengthLocalized: "발표 자료 생성", Link: "https://gamma.app"},
		{Name: "Copy.ai", Category: "글쓰기", DescriptionLocalized: "Marketing copy 자동화", Link: "https://copy.ai"},
		{Name: "Midjourney", Category: "이미지", SecondaryCategory: "Image Generators", Link: "https://midjourney.com"},
		{Name: "100%_Free", Category: "기타"},
	}
}

func TestToolRepository_AddAndGet(t *testing.T) {
	repo := openTestStore(t).Tools()
	ctx := context.Background()

	added, err := repo.AddTools(ctx, sampleTools()...)
	require.NoError(t, err)
	require.Len(t, added, 5)

	got, err := repo.GetTool(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, core.IDFromContent("Jasper|https://jasper.ai"), got.Id)
	assert.Equal(t, "마케팅", got.Category)
	assert.True(t, got.Free)
	assert.Equal(t, added[0].CreatedAt, got.CreatedAt)
}

func TestToolRepository_GetNotFound(t *testing.T) {
	repo := openTestStore(t).Tools()

	_, err := repo.GetTool(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestToolRepository_AddInvalid(t *testing.T) {
	repo := openTestStore(t).Tools()

	_, err := repo.AddTools(context.Background(), &core.Tool{Name: "  "})
	assert.ErrorIs(t, err, core.ErrInvalidTool)
}

func TestToolRepository_ReplaceKeepsPosition(t *testing.T) {
	repo := openTestStore(t).Tools()
	ctx := context.Background()

	added, err := repo.AddTools(ctx, sampleTools()...)
	require.NoError(t, err)
	createdAt := added[0].CreatedAt

	replaced, err := repo.AddTools(ctx, &core.Tool{Id: added[0].Id, Name: "Jasper", Category: "카피라이팅"})
	require.NoError(t, err)
	assert.Equal(t, createdAt, replaced[0].CreatedAt)

	got, err := repo.GetTool(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, replaced[0].UpdatedAt, got.UpdatedAt)

	tools, err := repo.ListTools(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tools, 5)
	assert.Equal(t, "카피라이팅", tools[0].Category)
}

func TestToolRepository_Search(t *testing.T) {
	repo := openTestStore(t).Tools()
	ctx := context.Background()
	_, err := repo.AddTools(ctx, sampleTools()...)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches localized category", "마케팅", []string{"Jasper"}},
		{"case-insensitive name", "GAMMA", []string{"Gamma"}},
		{"case-insensitive description", "marketing", []string{"Copy.ai"}},
		{"secondary category", "image gen", []string{"Midjourney"}},
		{"percent is literal", "100%", []string{"100%_Free"}},
		{"underscore is literal", "%_f", []string{"100%_Free"}},
		{"no match", "video", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools, err := repo.SearchTools(ctx, tt.query, core.DefaultSearchFields, 50)
			require.NoError(t, err)

			names := make([]string, 0, len(tools))
			for _, tool := range tools {
				names = append(names, tool.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestToolRepository_SearchLimitAndOrder(t *testing.T) {
	repo := openTestStore(t).Tools()
	ctx := context.Background()

	tools := make([]*core.Tool, 0, 30)
	for i := 0; i < 30; i++ {
		tools = append(tools, &core.Tool{Name: fmt.Sprintf("Writer %02d", i), Category: "글쓰기"})
	}
	_, err := repo.AddTools(ctx, tools...)
	require.NoError(t, err)

	found, err := repo.SearchTools(ctx, "글쓰기", core.DefaultSearchFields, 7)
	require.NoError(t, err)
	require.Len(t, found, 7)
	for i, tool := range found {
		assert.Equal(t, fmt.Sprintf("Writer %02d", i), tool.Name)
	}
}

func TestToolRepository_InvalidQuery(t *testing.T) {
	repo := openTestStore(t).Tools()
	ctx := context.Background()

	_, err := repo.SearchTools(ctx, "x", core.DefaultSearchFields, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = repo.SearchTools(ctx, "x", nil, 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = repo.SearchTools(ctx, "x", []core.SearchField{core.SearchField(42)}, 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = repo.ListTools(ctx, -1)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestToolRepository_ClosedStore(t *testing.T) {
	store := openTestStore(t)
	repo := store.Tools()
	ctx := context.Background()

	require.NoError(t, store.Close())

	_, err := repo.SearchTools(ctx, "x", core.DefaultSearchFields, 10)
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)

	_, err = repo.ListTools(ctx, 10)
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)

	_, err = repo.GetTool(ctx, "x")
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)

	_, err = repo.AddTools(ctx, &core.Tool{Name: "Late"})
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
}

func TestToolRepository_StatementErrorKeepsStoreAvailable(t *testing.T) {
	store := openTestStore(t)
	repo := store.Tools()
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, "DROP TABLE tools")
	require.NoError(t, err)

	_, err = repo.SearchTools(ctx, "x", core.DefaultSearchFields, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrStoreUnavailable)

	_, err = repo.ListTools(ctx, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrStoreUnavailable)

	assert.NoError(t, store.Ping(ctx))
}
