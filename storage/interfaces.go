package storage

import (
	"context"

	"github.com/picko-ai/picko/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Ping reports whether the underlying store is reachable.
	// Returns an error wrapping ErrStoreUnavailable when it is not.
	Ping(ctx context.Context) error

	// Close releases resources held by the repository.
	Close() error
}

// ToolRepository provides operations over the tool catalog.
// Scans and searches return tools in insertion order.
type ToolRepository interface {
	Repository

	// AddTools inserts or replaces tools.
	// Tools with an empty ID get one derived from core.IDFromContent(tool.ContentKey()).
	// Replacing a tool keeps its original position and CreatedAt.
	// Returns the tools with IDs and timestamps populated.
	AddTools(ctx context.Context, tools ...*core.Tool) ([]*core.Tool, error)

	// GetTool retrieves a single tool by ID.
	// Returns ErrNotFound if the tool doesn't exist.
	GetTool(ctx context.Context, id core.ID) (*core.Tool, error)

	// SearchTools returns up to limit tools where query is a case-insensitive
	// substring of at least one of the given fields.
	// Returns ErrInvalidQuery if limit < 1 or no fields are given.
	SearchTools(ctx context.Context, query string, fields []core.SearchField, limit int) ([]*core.Tool, error)

	// ListTools returns up to limit tools without filtering.
	// Returns ErrInvalidQuery if limit < 1.
	ListTools(ctx context.Context, limit int) ([]*core.Tool, error)
}

// InteractionRepository stores user feedback on tools.
type InteractionRepository interface {
	Repository

	// SaveInteraction upserts the interaction keyed by (SessionID, ToolID, Type).
	// Sets UpdatedAt.
	SaveInteraction(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error)

	// GetInteraction retrieves a single interaction.
	// Returns ErrNotFound if none was saved.
	GetInteraction(ctx context.Context, sessionID string, toolID core.ID, interactionType core.InteractionType) (*core.Interaction, error)

	// ListInteractions returns every interaction saved for a session.
	ListInteractions(ctx context.Context, sessionID string) ([]*core.Interaction, error)
}
