// Package model defines domain entities for the application.
package model

import "time"

// Admin is a back-office account able to edit site content.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims returns the identity attributes embedded in an admin token.
// Only the id is authoritative; email and name are display hints.
func (a *Admin) Claims() map[string]any {
	return map[string]any{
		"id":    a.ID,
		"email": a.Email,
		"name":  a.Name,
	}
}
