package storage

import (
	"testing"
	"time"

	"github.com/picko-ai/picko/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalTool(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	tool := &core.Tool{
		Id:                   core.IDFromContent("Gamma|https://gamma.app"),
		Name:                 "Gamma",
		Category:             "프레젠테이션",
		SecondaryCategory:    "Presentations",
		Strength:             "AI slide decks",
		StrengthLocalized:    "AI 발표 자료",
		Description:          "Create presentations",
		DescriptionLocalized: "프레젠테이션 생성",
		Free:                 true,
		Link:                 "https://gamma.app",
		CreatedAt:            now,
		UpdatedAt:            now.Add(time.Minute),
	}

	decoded, err := UnmarshalTool(MarshalTool(tool))
	require.NoError(t, err)
	assert.Equal(t, tool, decoded)
}

func TestUnmarshalTool_ZeroTimes(t *testing.T) {
	decoded, err := UnmarshalTool(MarshalTool(&core.Tool{Name: "bare"}))
	require.NoError(t, err)
	assert.Equal(t, "bare", decoded.Name)
	assert.True(t, decoded.CreatedAt.IsZero())
	assert.True(t, decoded.UpdatedAt.IsZero())
}

func TestUnmarshalTool_Truncated(t *testing.T) {
	data := MarshalTool(&core.Tool{Id: "abc", Name: "Gamma", Link: "https://gamma.app"})

	_, err := UnmarshalTool(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalTool([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalInteraction(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	interaction := &core.Interaction{
		SessionID: "session-1",
		ToolID:    "tool-1",
		ToolName:  "Gamma",
		Type:      core.InteractionRating,
		Rating:    4,
		UpdatedAt: now,
	}

	decoded, err := UnmarshalInteraction(MarshalInteraction(interaction))
	require.NoError(t, err)
	assert.Equal(t, interaction, decoded)

	_, err = UnmarshalInteraction([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalSequence(t *testing.T) {
	for _, seq := range []uint64{1, 300, 1 << 40} {
		decoded, err := UnmarshalSequence(MarshalSequence(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, decoded)
	}

	_, err := UnmarshalSequence(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
