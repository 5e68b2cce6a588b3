package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kingpotter-hr/full9-website/internal/model"
)

const adminColumns = `id, email, password_hash, name, created_at`

// GetAdminByEmail retrieves an admin by email address.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	return r.scanAdmin(r.pool.QueryRow(ctx, query, email), "email")
}

// GetAdminByID retrieves an admin by id.
func (r *Repository) GetAdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanAdmin(r.pool.QueryRow(ctx, query, id), "id")
}

func (r *Repository) scanAdmin(row pgx.Row, by string) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by %s: %w", by, err)
	}
	return &a, nil
}

// CreateAdmin inserts an admin and sets its ID and CreatedAt.
func (r *Repository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, admin.Email, admin.PasswordHash, admin.Name).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// UpdateAdminPassword replaces the stored hash for one admin.
func (r *Repository) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admins SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
