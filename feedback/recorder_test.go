package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
	"github.com/picko-ai/picko/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*Recorder, *badger.Backend) {
	t.Helper()
	toolRepo, interactionRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		toolRepo.Close()
		interactionRepo.Close()
		backend.Close()
	})

	recorder, err := NewRecorder(interactionRepo)
	require.NoError(t, err)
	return recorder, backend
}

func TestNewRecorder_RequiresRepository(t *testing.T) {
	_, err := NewRecorder(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestSaveFavorite(t *testing.T) {
	recorder, _ := newTestRecorder(t)
	ctx := context.Background()

	saved, err := recorder.SaveFavorite(ctx, "s1", "t1", "Jasper", true)
	require.NoError(t, err)
	assert.True(t, saved.IsFavorited)
	assert.False(t, saved.UpdatedAt.IsZero())

	_, err = recorder.SaveFavorite(ctx, "s1", "t1", "Jasper", false)
	require.NoError(t, err)

	interactions, err := recorder.Interactions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.False(t, interactions[0].IsFavorited)
	assert.Equal(t, "Jasper", interactions[0].ToolName)
}

func TestSaveRating(t *testing.T) {
	recorder, _ := newTestRecorder(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		rating  int
		wantErr error
	}{
		{"lowest", 1, nil},
		{"highest", 5, nil},
		{"zero", 0, core.ErrInvalidRating},
		{"too high", 6, core.ErrInvalidRating},
		{"negative", -3, core.ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved, err := recorder.SaveRating(ctx, "s1", "t1", "Gamma", tt.rating)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, core.ErrInvalidInteraction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rating, saved.Rating)
		})
	}

	interactions, err := recorder.Interactions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, 5, interactions[0].Rating)
}

func TestFavoriteAndRatingAreIndependent(t *testing.T) {
	recorder, _ := newTestRecorder(t)
	ctx := context.Background()

	_, err := recorder.SaveFavorite(ctx, "s1", "t1", "Jasper", true)
	require.NoError(t, err)
	_, err = recorder.SaveRating(ctx, "s1", "t1", "Jasper", 4)
	require.NoError(t, err)
	_, err = recorder.SaveRating(ctx, "s2", "t1", "Jasper", 2)
	require.NoError(t, err)

	interactions, err := recorder.Interactions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, interactions, 2)

	byType := map[core.InteractionType]*core.Interaction{}
	for _, i := range interactions {
		byType[i.Type] = i
	}
	assert.True(t, byType[core.InteractionFavorite].IsFavorited)
	assert.Equal(t, 4, byType[core.InteractionRating].Rating)
}

func TestSave_InvalidInput(t *testing.T) {
	recorder, _ := newTestRecorder(t)
	ctx := context.Background()

	_, err := recorder.SaveFavorite(ctx, "", "t1", "Jasper", true)
	assert.ErrorIs(t, err, core.ErrEmptySessionID)

	_, err = recorder.SaveRating(ctx, "s1", "", "Jasper", 3)
	assert.ErrorIs(t, err, core.ErrEmptyToolID)

	_, err = recorder.Interactions(ctx, "")
	assert.ErrorIs(t, err, core.ErrEmptySessionID)
}

func TestInteractions_EmptySession(t *testing.T) {
	recorder, _ := newTestRecorder(t)

	interactions, err := recorder.Interactions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, interactions)
}

func TestSave_StoreUnavailable(t *testing.T) {
	recorder, backend := newTestRecorder(t)
	require.NoError(t, backend.Close())

	_, err := recorder.SaveFavorite(context.Background(), "s1", "t1", "Jasper", true)
	assert.True(t, errors.Is(err, storage.ErrStoreUnavailable))
}
