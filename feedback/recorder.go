// Package feedback records favorites and star ratings that users give to
// recommended tools. Each (session, tool, type) holds at most one interaction;
// saving again replaces the previous value.
package feedback

import (
	"context"
	"log/slog"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/metrics"
	"github.com/picko-ai/picko/storage"
)

// Recorder saves user feedback on tools.
type Recorder struct {
	repo   storage.InteractionRepository
	logger *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "feedback")
		return nil
	}
}

// NewRecorder creates a recorder over repo.
func NewRecorder(repo storage.InteractionRepository, opts ...Option) (*Recorder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	r := &Recorder{
		repo:   repo,
		logger: slog.Default().With("component", "feedback"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SaveFavorite marks toolID as favorited or unfavorited for the session.
func (r *Recorder) SaveFavorite(ctx context.Context, sessionID string, toolID core.ID, toolName string, favorited bool) (*core.Interaction, error) {
	return r.save(ctx, &core.Interaction{
		SessionID:   sessionID,
		ToolID:      toolID,
		ToolName:    toolName,
		Type:        core.InteractionFavorite,
		IsFavorited: favorited,
	})
}

// SaveRating stores a rating between core.MinRating and core.MaxRating.
func (r *Recorder) SaveRating(ctx context.Context, sessionID string, toolID core.ID, toolName string, rating int) (*core.Interaction, error) {
	return r.save(ctx, &core.Interaction{
		SessionID: sessionID,
		ToolID:    toolID,
		ToolName:  toolName,
		Type:      core.InteractionRating,
		Rating:    rating,
	})
}

// Interactions lists everything saved for the session.
func (r *Recorder) Interactions(ctx context.Context, sessionID string) ([]*core.Interaction, error) {
	if sessionID == "" {
		return nil, core.ErrEmptySessionID
	}
	interactions, err := r.repo.ListInteractions(ctx, sessionID)
	if err != nil {
		r.logger.Error("failed to list interactions", "session", sessionID, "err", err)
		return nil, err
	}
	return interactions, nil
}

func (r *Recorder) save(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error) {
	if err := core.ValidateInteraction(interaction); err != nil {
		metrics.RecordInteraction(interaction.Type.String(), err)
		return nil, err
	}

	saved, err := r.repo.SaveInteraction(ctx, interaction)
	metrics.RecordInteraction(interaction.Type.String(), err)
	if err != nil {
		r.logger.Error("failed to save interaction",
			"session", interaction.SessionID,
			"tool", interaction.ToolID,
			"type", interaction.Type,
			"err", err)
		return nil, err
	}

	r.logger.Debug("saved interaction",
		"session", saved.SessionID,
		"tool", saved.ToolID,
		"type", saved.Type)
	return saved, nil
}
