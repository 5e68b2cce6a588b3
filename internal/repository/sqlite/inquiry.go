package sqlite

import (
	"context"
	"fmt"

	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

// ListInquiries returns inquiries newest first.
func (s *Store) ListInquiries(ctx context.Context, filter model.InquiryFilter) ([]model.Inquiry, error) {
	query := `
		SELECT id, reference, name, email, phone, subject, message, status, admin_notes, created_at
		FROM inquiries
	`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, repository.ClampLimit(filter.Limit))

	rows, err := s.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]model.Inquiry, 0)
	for rows.Next() {
		var q model.Inquiry
		var created string
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
			&created,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		if q.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, q)
	}
	return inquiries, rows.Err()
}

// CountInquiries counts inquiries with the given status, or all when empty.
func (s *Store) CountInquiries(ctx context.Context, status model.InquiryStatus) (int, error) {
	query := `SELECT COUNT(*) FROM inquiries`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}

	var n int
	if err := s.Reader.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return n, nil
}

// CreateInquiry inserts an inquiry and sets its ID and CreatedAt.
func (s *Store) CreateInquiry(ctx context.Context, q *model.Inquiry) error {
	const query = `
		INSERT INTO inquiries (reference, name, email, phone, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now().UTC()
	res, err := s.Writer.ExecContext(ctx, query,
		q.Reference, q.Name, q.Email, q.Phone, q.Subject, q.Message, q.Status, formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("create inquiry: %w", err)
	}

	if q.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("create inquiry: last insert id: %w", err)
	}
	q.CreatedAt = now
	return nil
}

// UpdateInquiryStatus sets status and admin notes.
func (s *Store) UpdateInquiryStatus(ctx context.Context, id int64, status model.InquiryStatus, notes *string) error {
	res, err := s.Writer.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, admin_notes = ? WHERE id = ?`,
		status, notes, id,
	)
	if err != nil {
		return fmt.Errorf("update inquiry %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// DeleteInquiry removes an inquiry.
func (s *Store) DeleteInquiry(ctx context.Context, id int64) error {
	res, err := s.Writer.ExecContext(ctx, `DELETE FROM inquiries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}
