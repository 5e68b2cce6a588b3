package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kingpotter-hr/full9-website/internal/model"
)

const contentColumns = `id, key, value, section, type, updated_at`

// ListContent returns every content item ordered by section then key.
func (r *Repository) ListContent(ctx context.Context) ([]model.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content ORDER BY section, key`
	return r.queryContent(ctx, query)
}

// ListContentBySection returns the items of one section ordered by key.
func (r *Repository) ListContentBySection(ctx context.Context, section string) ([]model.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE section = $1 ORDER BY key`
	return r.queryContent(ctx, query, section)
}

func (r *Repository) queryContent(ctx context.Context, query string, args ...any) ([]model.ContentItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	items := make([]model.ContentItem, 0)
	for rows.Next() {
		var c model.ContentItem
		if err := rows.Scan(&c.ID, &c.Key, &c.Value, &c.Section, &c.Type, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetContent retrieves one content item by key.
func (r *Repository) GetContent(ctx context.Context, key string) (*model.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE key = $1`

	var c model.ContentItem
	err := r.pool.QueryRow(ctx, query, key).Scan(&c.ID, &c.Key, &c.Value, &c.Section, &c.Type, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &c, nil
}

// UpsertContent inserts or replaces the item with the same key.
func (r *Repository) UpsertContent(ctx context.Context, item *model.ContentItem) error {
	query := `
		INSERT INTO content (key, value, section, type, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			section = EXCLUDED.section,
			type = EXCLUDED.type,
			updated_at = now()
		RETURNING id, updated_at
	`

	err := r.pool.QueryRow(ctx, query, item.Key, item.Value, item.Section, item.Type).
		Scan(&item.ID, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert content: %w", err)
	}
	return nil
}

// DeleteContent removes the item with the given key.
func (r *Repository) DeleteContent(ctx context.Context, key string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM content WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
