package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
)

const interactionColumns = `session_id, tool_id, tool_name, interaction_type, is_favorited, rating, updated_at`

// InteractionRepository implements storage.InteractionRepository for SQLite.
type InteractionRepository struct {
	store *Store
}

var _ storage.InteractionRepository = (*InteractionRepository)(nil)

// Close is a no-op; the Store owns the database handle.
func (r *InteractionRepository) Close() error {
	return nil
}

// Ping delegates to the store.
func (r *InteractionRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// SaveInteraction upserts the interaction keyed by session, tool and type.
func (r *InteractionRepository) SaveInteraction(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error) {
	if err := core.ValidateInteraction(interaction); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO interactions (`+interactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, tool_id, interaction_type) DO UPDATE SET
			tool_name = excluded.tool_name,
			is_favorited = excluded.is_favorited,
			rating = excluded.rating,
			updated_at = excluded.updated_at`,
		interaction.SessionID, string(interaction.ToolID), interaction.ToolName,
		interaction.Type.String(), interaction.IsFavorited, interaction.Rating, now.UnixMicro(),
	)
	if err != nil {
		return nil, r.store.classify(err)
	}

	interaction.UpdatedAt = now
	return interaction, nil
}

// GetInteraction retrieves a single interaction.
func (r *InteractionRepository) GetInteraction(ctx context.Context, sessionID string, toolID core.ID, interactionType core.InteractionType) (*core.Interaction, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+interactionColumns+" FROM interactions WHERE session_id = ? AND tool_id = ? AND interaction_type = ?",
		sessionID, string(toolID), interactionType.String())
	interaction, err := scanInteraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, r.store.classify(err)
	}
	return interaction, nil
}

// ListInteractions returns every interaction saved for a session, ordered by tool and type.
func (r *InteractionRepository) ListInteractions(ctx context.Context, sessionID string) ([]*core.Interaction, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+interactionColumns+" FROM interactions WHERE session_id = ? ORDER BY tool_id, interaction_type",
		sessionID)
	if err != nil {
		return nil, r.store.classify(err)
	}
	defer rows.Close()

	results := make([]*core.Interaction, 0)
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, r.store.classify(err)
		}
		results = append(results, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, r.store.classify(err)
	}
	return results, nil
}

func scanInteraction(row rowScanner) (*core.Interaction, error) {
	var (
		interaction core.Interaction
		toolID      string
		typeName    string
		updatedAt   int64
	)
	err := row.Scan(&interaction.SessionID, &toolID, &interaction.ToolName, &typeName,
		&interaction.IsFavorited, &interaction.Rating, &updatedAt)
	if err != nil {
		return nil, err
	}

	interaction.Type, err = core.ParseInteractionType(typeName)
	if err != nil {
		return nil, err
	}
	interaction.ToolID = core.ID(toolID)
	interaction.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return &interaction, nil
}
