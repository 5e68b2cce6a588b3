package model

import (
	"slices"
	"time"
)

// InquiryStatus tracks how far an inquiry has been handled.
type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryCompleted InquiryStatus = "completed"
	InquiryCancelled InquiryStatus = "cancelled"
)

// ValidInquiryStatuses contains all valid inquiry statuses.
var ValidInquiryStatuses = []InquiryStatus{InquiryPending, InquiryCompleted, InquiryCancelled}

// IsValid checks if the status is known.
func (s InquiryStatus) IsValid() bool {
	return slices.Contains(ValidInquiryStatuses, s)
}

// Inquiry is a contact form submission.
type Inquiry struct {
	ID         int64         `json:"id"`
	Reference  string        `json:"reference"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      *string       `json:"phone"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	Status     InquiryStatus `json:"status"`
	AdminNotes *string       `json:"admin_notes"`
	CreatedAt  time.Time     `json:"created_at"`
}

// InquiryFilter narrows an admin inquiry listing.
type InquiryFilter struct {
	Status InquiryStatus
	Limit  int
}
