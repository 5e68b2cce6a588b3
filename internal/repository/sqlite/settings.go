package sqlite

import (
	"context"
	"fmt"
)

// GetSettings returns all settings as a key/value map.
func (s *Store) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.Reader.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// UpsertSettings writes every pair in one transaction.
func (s *Store) UpsertSettings(ctx context.Context, settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}

	tx, err := s.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare settings upsert: %w", err)
	}
	defer stmt.Close()

	now := s.timestamp()
	for k, v := range settings {
		if _, err := stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("upsert setting %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}
