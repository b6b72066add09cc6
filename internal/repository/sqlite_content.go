package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
)

// SQLiteContentRepo stores the content catalog.
type SQLiteContentRepo struct {
	db db.DBTX
}

// NewSQLiteContentRepo creates a new SQLiteContentRepo.
func NewSQLiteContentRepo(conn db.DBTX) *SQLiteContentRepo {
	return &SQLiteContentRepo{db: conn}
}

// Upsert inserts an item or updates it in place. An update keeps the item's
// original created_at and so its catalog position.
func (r *SQLiteContentRepo) Upsert(ctx context.Context, item *domain.ContentItem) error {
	query := `INSERT INTO content_items (id, title, category, type, difficulty, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			type = excluded.type,
			difficulty = excluded.difficulty`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Category,
		item.Type,
		item.Difficulty,
		formatTime(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting content item %s: %w", item.ID, err)
	}
	return nil
}

func (r *SQLiteContentRepo) ListByCategory(ctx context.Context, category string) ([]*domain.ContentItem, error) {
	return r.list(ctx, `WHERE category = ?`, category)
}

func (r *SQLiteContentRepo) List(ctx context.Context) ([]*domain.ContentItem, error) {
	return r.list(ctx, "")
}

func (r *SQLiteContentRepo) list(ctx context.Context, where string, args ...any) ([]*domain.ContentItem, error) {
	query := `SELECT id, title, category, type, difficulty, created_at
		FROM content_items ` + where + `
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing content items: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Type, &item.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning content item: %w", err)
		}
		if item.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content items: %w", err)
	}
	return out, nil
}
