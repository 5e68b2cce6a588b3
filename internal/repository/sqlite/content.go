package sqlite

import (
	"context"
	"fmt"

	"github.com/kingpotter-hr/full9-website/internal/model"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// ListContent returns every content item ordered by section then key.
func (s *Store) ListContent(ctx context.Context) ([]model.ContentItem, error) {
	return s.queryContent(ctx, `
		SELECT id, key, value, section, type, updated_at
		FROM content
		ORDER BY section, key
	`)
}

// ListContentBySection returns the items of one section ordered by key.
func (s *Store) ListContentBySection(ctx context.Context, section string) ([]model.ContentItem, error) {
	return s.queryContent(ctx, `
		SELECT id, key, value, section, type, updated_at
		FROM content
		WHERE section = ?
		ORDER BY key
	`, section)
}

func (s *Store) queryContent(ctx context.Context, query string, args ...any) ([]model.ContentItem, error) {
	rows, err := s.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := make([]model.ContentItem, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func scanContent(row rowScanner) (*model.ContentItem, error) {
	var c model.ContentItem
	var updated string
	if err := row.Scan(&c.ID, &c.Key, &c.Value, &c.Section, &c.Type, &updated); err != nil {
		return nil, err
	}
	t, err := parseTime(updated)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt = t
	return &c, nil
}

// GetContent retrieves one content item by key.
func (s *Store) GetContent(ctx context.Context, key string) (*model.ContentItem, error) {
	const query = `SELECT id, key, value, section, type, updated_at FROM content WHERE key = ?`
	c, err := scanContent(s.Reader.QueryRowContext(ctx, query, key))
	if err != nil {
		return nil, fmt.Errorf("get content %q: %w", key, notFound(err))
	}
	return c, nil
}

// UpsertContent inserts or replaces the item with the same key.
func (s *Store) UpsertContent(ctx context.Context, item *model.ContentItem) error {
	const query = `
		INSERT INTO content (key, value, section, type, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			section = excluded.section,
			type = excluded.type,
			updated_at = excluded.updated_at
		RETURNING id
	`

	now := s.now().UTC()
	err := s.Writer.QueryRowContext(ctx, query, item.Key, item.Value, item.Section, item.Type, formatTime(now)).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("upsert content %q: %w", item.Key, err)
	}
	item.UpdatedAt = now
	return nil
}

// DeleteContent removes the item with the given key.
func (s *Store) DeleteContent(ctx context.Context, key string) error {
	res, err := s.Writer.ExecContext(ctx, `DELETE FROM content WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete content %q: %w", key, err)
	}
	return affectedOrNotFound(res)
}
