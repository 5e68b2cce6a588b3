package repository

import (
	"context"
	"fmt"

	"github.com/kingpotter-hr/full9-website/internal/model"
)

// ListInquiries returns inquiries newest first.
func (r *Repository) ListInquiries(ctx context.Context, filter model.InquiryFilter) ([]model.Inquiry, error) {
	query := `
		SELECT id, reference, name, email, phone, subject, message, status, admin_notes, created_at
		FROM inquiries
	`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	args = append(args, ClampLimit(filter.Limit))
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]model.Inquiry, 0)
	for rows.Next() {
		var q model.Inquiry
		err := rows.Scan(
			&q.ID,
			&q.Reference,
			&q.Name,
			&q.Email,
			&q.Phone,
			&q.Subject,
			&q.Message,
			&q.Status,
			&q.AdminNotes,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, q)
	}
	return inquiries, rows.Err()
}

// CountInquiries counts inquiries with the given status, or all when empty.
func (r *Repository) CountInquiries(ctx context.Context, status model.InquiryStatus) (int, error) {
	query := `SELECT COUNT(*) FROM inquiries`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return n, nil
}

// CreateInquiry inserts an inquiry and sets its ID and CreatedAt.
func (r *Repository) CreateInquiry(ctx context.Context, q *model.Inquiry) error {
	query := `
		INSERT INTO inquiries (reference, name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, q.Reference, q.Name, q.Email, q.Phone, q.Subject, q.Message, q.Status).
		Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// UpdateInquiryStatus sets status and admin notes.
func (r *Repository) UpdateInquiryStatus(ctx context.Context, id int64, status model.InquiryStatus, notes *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE inquiries SET status = $2, admin_notes = $3 WHERE id = $1`,
		id, status, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInquiry removes an inquiry.
func (r *Repository) DeleteInquiry(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "inquiries", id)
}
