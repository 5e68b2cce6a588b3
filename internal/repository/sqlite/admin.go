package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

// GetAdminByEmail retrieves an admin by email address.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const query = `SELECT id, email, password_hash, name, created_at FROM admins WHERE email = ?`
	a, err := scanAdmin(s.Reader.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get admin by email: %w", notFound(err))
	}
	return a, nil
}

// GetAdminByID retrieves an admin by id.
func (s *Store) GetAdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT id, email, password_hash, name, created_at FROM admins WHERE id = ?`
	a, err := scanAdmin(s.Reader.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get admin %d: %w", id, notFound(err))
	}
	return a, nil
}

func scanAdmin(row *sql.Row) (*model.Admin, error) {
	var a model.Admin
	var created string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = t
	return &a, nil
}

// CreateAdmin inserts an admin and sets its ID and CreatedAt.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	const query = `INSERT INTO admins (email, password_hash, name, created_at) VALUES (?, ?, ?, ?)`

	now := s.now().UTC()
	res, err := s.Writer.ExecContext(ctx, query, admin.Email, admin.PasswordHash, admin.Name, formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("create admin: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create admin: last insert id: %w", err)
	}
	admin.ID = id
	admin.CreatedAt = now
	return nil
}

// UpdateAdminPassword replaces the stored hash for one admin.
func (s *Store) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.Writer.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return affectedOrNotFound(res)
}
