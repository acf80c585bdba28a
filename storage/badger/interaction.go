package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
)

// InteractionRepository implements storage.InteractionRepository for BadgerDB.
type InteractionRepository struct {
	backend *Backend
}

var _ storage.InteractionRepository = (*InteractionRepository)(nil)

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(backend *Backend) *InteractionRepository {
	return &InteractionRepository{
		backend: backend,
	}
}

// Close releases resources. InteractionRepository has no resources to release.
func (r *InteractionRepository) Close() error {
	return nil
}

// Ping delegates to the backend.
func (r *InteractionRepository) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

// SaveInteraction upserts the interaction keyed by session, tool and type.
func (r *InteractionRepository) SaveInteraction(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error) {
	if err := core.ValidateInteraction(interaction); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		interaction.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		key := makeInteractionKey(interaction.SessionID, interaction.ToolID, interaction.Type)
		if err := tx.Set(key, storage.MarshalInteraction(interaction)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

// GetInteraction retrieves a single interaction.
func (r *InteractionRepository) GetInteraction(ctx context.Context, sessionID string, toolID core.ID, interactionType core.InteractionType) (*core.Interaction, error) {
	var interaction *core.Interaction
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeInteractionKey(sessionID, toolID, interactionType))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			interaction, err = storage.UnmarshalInteraction(val)
			return err
		})
	}, false)
	return interaction, err
}

// ListInteractions returns every interaction saved for a session.
func (r *InteractionRepository) ListInteractions(ctx context.Context, sessionID string) ([]*core.Interaction, error) {
	results := make([]*core.Interaction, 0)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				interaction, err := storage.UnmarshalInteraction(val)
				if err != nil {
					return err
				}
				results = append(results, interaction)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}
