// Package service provides business logic for the site API.
package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/kingpotter-hr/full9-website/internal/repository"
)

// Service errors.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("new password is too short")
	ErrStorageDisabled    = errors.New("upload storage not configured")
	ErrUnsupportedMedia   = errors.New("unsupported image type")
	ErrFileTooLarge       = errors.New("file too large")
)

// ValidationError describes the first invalid field of an input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// required trims s and checks it is present and at most max runes.
func required(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(s) > max {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return s, nil
}

// optional trims s and maps an empty result to nil.
func optional(field string, s *string, max int) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return &v, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// storeErr maps datastore sentinels onto service errors.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
