package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/storage"
)

const toolColumns = `id, name, category_kr, futurepedia_category, strength, strength_kr,
	description, description_kr, free, link, created_at, updated_at`

// ToolRepository implements storage.ToolRepository for SQLite.
type ToolRepository struct {
	store *Store
}

var _ storage.ToolRepository = (*ToolRepository)(nil)

// Close is a no-op; the Store owns the database handle.
func (r *ToolRepository) Close() error {
	return nil
}

// Ping delegates to the store.
func (r *ToolRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// AddTools inserts or replaces tools.
// A replaced tool keeps its seq and created_at, so its catalog position is stable.
func (r *ToolRepository) AddTools(ctx context.Context, tools ...*core.Tool) ([]*core.Tool, error) {
	for _, tool := range tools {
		if err := core.ValidateTool(tool); err != nil {
			return nil, err
		}
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.store.classify(err)
	}
	defer tx.Rollback()

	for _, tool := range tools {
		if tool.Id == "" {
			tool.Id = core.IDFromContent(tool.ContentKey())
		}
		now := time.Now().UTC().Truncate(time.Microsecond)

		_, err := tx.ExecContext(ctx, `
			INSERT INTO tools (`+toolColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				category_kr = excluded.category_kr,
				futurepedia_category = excluded.futurepedia_category,
				strength = excluded.strength,
				strength_kr = excluded.strength_kr,
				description = excluded.description,
				description_kr = excluded.description_kr,
				free = excluded.free,
				link = excluded.link,
				updated_at = excluded.updated_at`,
			string(tool.Id), tool.Name, tool.Category, tool.SecondaryCategory,
			tool.Strength, tool.StrengthLocalized, tool.Description, tool.DescriptionLocalized,
			tool.Free, tool.Link, now.UnixMicro(), now.UnixMicro(),
		)
		if err != nil {
			return nil, r.store.classify(err)
		}

		var createdAt int64
		if err := tx.QueryRowContext(ctx, "SELECT created_at FROM tools WHERE id = ?", string(tool.Id)).Scan(&createdAt); err != nil {
			return nil, r.store.classify(err)
		}
		tool.CreatedAt = time.UnixMicro(createdAt).UTC()
		tool.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return nil, r.store.classify(err)
	}
	return tools, nil
}

// GetTool retrieves a single tool by ID.
func (r *ToolRepository) GetTool(ctx context.Context, id core.ID) (*core.Tool, error) {
	row := r.store.db.QueryRowContext(ctx, "SELECT "+toolColumns+" FROM tools WHERE id = ?", string(id))
	tool, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, r.store.classify(err)
	}
	return tool, nil
}

// SearchTools returns tools where query is a case-insensitive substring of any given field.
// Rows come back in insertion order.
func (r *ToolRepository) SearchTools(ctx context.Context, query string, fields []core.SearchField, limit int) ([]*core.Tool, error) {
	if limit < 1 || len(fields) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	clauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		column := f.String()
		if column == "unknown" {
			return nil, fmt.Errorf("%w: unknown search field %d", storage.ErrInvalidQuery, f)
		}
		clauses = append(clauses, "lower("+column+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	args = append(args, limit)

	stmt := "SELECT " + toolColumns + " FROM tools WHERE " + strings.Join(clauses, " OR ") + " ORDER BY seq LIMIT ?"
	return r.query(ctx, stmt, args...)
}

// ListTools returns up to limit tools in insertion order.
func (r *ToolRepository) ListTools(ctx context.Context, limit int) ([]*core.Tool, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidQuery
	}
	return r.query(ctx, "SELECT "+toolColumns+" FROM tools ORDER BY seq LIMIT ?", limit)
}

func (r *ToolRepository) query(ctx context.Context, stmt string, args ...any) ([]*core.Tool, error) {
	rows, err := r.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, r.store.classify(err)
	}
	defer rows.Close()

	results := make([]*core.Tool, 0)
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, r.store.classify(err)
		}
		results = append(results, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, r.store.classify(err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (*core.Tool, error) {
	var (
		tool                 core.Tool
		id                   string
		createdAt, updatedAt int64
	)
	err := row.Scan(&id, &tool.Name, &tool.Category, &tool.SecondaryCategory,
		&tool.Strength, &tool.StrengthLocalized, &tool.Description, &tool.DescriptionLocalized,
		&tool.Free, &tool.Link, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	tool.Id = core.ID(id)
	tool.CreatedAt = time.UnixMicro(createdAt).UTC()
	tool.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return &tool, nil
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
