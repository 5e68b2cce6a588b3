package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetSettings returns all settings as a key/value map.
func (r *Repository) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// UpsertSettings writes every pair in one transaction.
func (r *Repository) UpsertSettings(ctx context.Context, settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for k, v := range settings {
		batch.Queue(`
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`, k, v)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin settings transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
