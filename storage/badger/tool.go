package badger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
)

// ToolRepository implements storage.ToolRepository for BadgerDB.
type ToolRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ToolRepository = (*ToolRepository)(nil)

// NewToolRepository creates a new ToolRepository.
func NewToolRepository(backend *Backend) (*ToolRepository, error) {
	idSeq, err := backend.GetSequence(toolSeq)
	if err != nil {
		return nil, err
	}

	return &ToolRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the sequence.
func (r *ToolRepository) Close() error {
	return r.idSeq.Release()
}

// Ping delegates to the backend.
func (r *ToolRepository) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

// AddTools inserts or replaces tools.
func (r *ToolRepository) AddTools(ctx context.Context, tools ...*core.Tool) ([]*core.Tool, error) {
	for _, tool := range tools {
		if err := core.ValidateTool(tool); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tool := range tools {
			if tool.Id == "" {
				tool.Id = core.IDFromContent(tool.ContentKey())
			}

			now := time.Now().UTC().Truncate(time.Microsecond)
			tool.UpdatedAt = now

			seq, old, err := r.lookup(tx, tool.Id)
			if err != nil {
				return err
			}
			if old != nil {
				tool.CreatedAt = old.CreatedAt
			} else {
				tool.CreatedAt = now
				if seq, err = r.nextSeq(); err != nil {
					return err
				}
				if err := tx.Set(makeToolIDKey(tool.Id), storage.MarshalSequence(seq)); err != nil {
					return err
				}
			}

			if err := tx.Set(makeToolRecordKey(seq), storage.MarshalTool(tool)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return tools, nil
}

// GetTool retrieves a single tool by ID.
func (r *ToolRepository) GetTool(ctx context.Context, id core.ID) (*core.Tool, error) {
	var tool *core.Tool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, found, err := r.lookup(tx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return storage.ErrNotFound
		}
		tool = found
		return nil
	}, false)
	return tool, err
}

// SearchTools scans the catalog in insertion order and keeps tools where query
// is a case-insensitive substring of any of the given fields.
func (r *ToolRepository) SearchTools(ctx context.Context, query string, fields []core.SearchField, limit int) ([]*core.Tool, error) {
	if limit < 1 || len(fields) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	needle := strings.ToLower(query)
	return r.scan(ctx, limit, func(tool *core.Tool) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(tool.Value(f)), needle) {
				return true
			}
		}
		return false
	})
}

// ListTools returns up to limit tools in insertion order.
func (r *ToolRepository) ListTools(ctx context.Context, limit int) ([]*core.Tool, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidQuery
	}
	return r.scan(ctx, limit, func(*core.Tool) bool { return true })
}

func (r *ToolRepository) scan(ctx context.Context, limit int, keep func(*core.Tool) bool) ([]*core.Tool, error) {
	results := make([]*core.Tool, 0)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(toolRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var tool *core.Tool
			err := iter.Item().Value(func(val []byte) error {
				var err error
				tool, err = storage.UnmarshalTool(val)
				return err
			})
			if err != nil {
				return err
			}

			if keep(tool) {
				results = append(results, tool)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// lookup resolves a tool ID to its sequence and current record.
// Returns a nil tool if the ID is unknown.
func (r *ToolRepository) lookup(tx *badger.Txn, id core.ID) (uint64, *core.Tool, error) {
	item, err := tx.Get(makeToolIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}

	var seq uint64
	err = item.Value(func(val []byte) error {
		var err error
		seq, err = storage.UnmarshalSequence(val)
		return err
	})
	if err != nil {
		return 0, nil, err
	}

	item, err = tx.Get(makeToolRecordKey(seq))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}

	var tool *core.Tool
	err = item.Value(func(val []byte) error {
		var err error
		tool, err = storage.UnmarshalTool(val)
		return err
	})
	return seq, tool, err
}

func (r *ToolRepository) nextSeq() (uint64, error) {
	seq, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if seq == 0 {
		return r.idSeq.Next()
	}
	return seq, nil
}
