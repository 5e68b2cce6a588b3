// Package sqlite implements the site datastore on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kingpotter-hr/full9-website/internal/repository"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schema string

// Compile-time interface satisfaction check.
var _ repository.Store = (*Store)(nil)

// Store provides dual reader/writer connections. The writer is limited to a
// single connection to avoid "database is locked" errors.
type Store struct {
	Writer *sql.DB
	Reader *sql.DB
	now    func() time.Time
}

// Open opens (creating if needed) the database file at path with WAL mode.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path,
	)
	return open(dsn)
}

// OpenMemory opens a named shared in-memory database. Connections opened with
// the same name see the same data until the last one closes.
func OpenMemory(name string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(name),
	)
	return open(dsn)
}

func open(dsn string) (*Store, error) {
	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.Ping(); err != nil {
		writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)

	if err := reader.Ping(); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &Store{Writer: writer, Reader: reader, now: time.Now}, nil
}

// Ping checks both connections.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Writer.PingContext(ctx); err != nil {
		return fmt.Errorf("ping writer: %w", err)
	}
	return s.Reader.PingContext(ctx)
}

// Close closes both reader and writer connections.
func (s *Store) Close() {
	_ = s.Reader.Close()
	_ = s.Writer.Close()
}

// EnsureSchema creates any missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range repository.SplitStatements(schema) {
		if _, err := s.Writer.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (s *Store) timestamp() string {
	return formatTime(s.now())
}

// timeLayout is fixed width so stored values sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var sqlErr *moderncsqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "UNIQUE")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
