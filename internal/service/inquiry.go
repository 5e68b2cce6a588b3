package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
	"github.com/kingpotter-hr/full9-website/internal/webhook"
	"github.com/oklog/ulid/v2"
)

const (
	maxEmailLength   = 254
	maxPhoneLength   = 50
	maxSubjectLength = 255
	maxMessageLength = 5000
	maxNotesLength   = 2000
	maxRefRetries    = 3
)

// Notifier accepts events for asynchronous delivery.
type Notifier interface {
	Enqueue(evt webhook.Event) bool
}

// InquiryInput is a contact form submission.
type InquiryInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}

// InquiryList is the admin listing plus the number of pending inquiries.
type InquiryList struct {
	Inquiries    []model.Inquiry `json:"inquiries"`
	PendingCount int             `json:"pending_count"`
}

// InquiryService handles contact form intake and triage.
type InquiryService struct {
	store    repository.InquiryStore
	notifier Notifier
	metrics  metrics.Recorder
}

// NewInquiryService creates an InquiryService. notifier may be nil.
func NewInquiryService(store repository.InquiryStore, notifier Notifier, recorder metrics.Recorder) *InquiryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &InquiryService{store: store, notifier: notifier, metrics: recorder}
}

// Submit validates and stores a public inquiry, then queues a notification.
func (s *InquiryService) Submit(ctx context.Context, in InquiryInput) (*model.Inquiry, error) {
	q, err := normalizeInquiry(in)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		q.Reference = ulid.Make().String()
		err = s.store.CreateInquiry(ctx, q)
		if !errors.Is(err, repository.ErrConflict) || attempt+1 >= maxRefRetries {
			break
		}
	}
	if err != nil {
		return nil, storeErr("create inquiry", err)
	}

	s.metrics.IncInquirySubmitted()
	if s.notifier != nil {
		s.notifier.Enqueue(webhook.NewInquiryEvent(q))
	} else {
		s.metrics.IncNotification("skipped")
	}
	return q, nil
}

func normalizeInquiry(in InquiryInput) (*model.Inquiry, error) {
	name, err := required("name", in.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	email, err := required("email", in.Email, maxEmailLength)
	if err != nil {
		return nil, err
	}
	if !validEmail(email) {
		return nil, invalid("email", "is not a valid address")
	}
	phone, err := optional("phone", in.Phone, maxPhoneLength)
	if err != nil {
		return nil, err
	}
	subject, err := required("subject", in.Subject, maxSubjectLength)
	if err != nil {
		return nil, err
	}
	message, err := required("message", in.Message, maxMessageLength)
	if err != nil {
		return nil, err
	}

	return &model.Inquiry{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
		Status:  model.InquiryPending,
	}, nil
}

// List returns inquiries newest first with the pending count.
func (s *InquiryService) List(ctx context.Context, status string, limit int) (*InquiryList, error) {
	st := model.InquiryStatus(strings.TrimSpace(status))
	if st != "" && !st.IsValid() {
		return nil, invalid("status", "must be one of pending, completed, cancelled")
	}

	items, err := s.store.ListInquiries(ctx, model.InquiryFilter{
		Status: st,
		Limit:  repository.ClampLimit(limit),
	})
	if err != nil {
		return nil, storeErr("list inquiries", err)
	}

	pending, err := s.store.CountInquiries(ctx, model.InquiryPending)
	if err != nil {
		return nil, storeErr("count pending inquiries", err)
	}
	return &InquiryList{Inquiries: items, PendingCount: pending}, nil
}

// UpdateStatus sets the triage status and admin notes of an inquiry.
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, status string, notes *string) error {
	st := model.InquiryStatus(strings.TrimSpace(status))
	if !st.IsValid() {
		return invalid("status", "must be one of pending, completed, cancelled")
	}
	n, err := optional("admin_notes", notes, maxNotesLength)
	if err != nil {
		return err
	}
	if err := s.store.UpdateInquiryStatus(ctx, id, st, n); err != nil {
		return storeErr("update inquiry status", err)
	}
	s.metrics.IncContentChange("inquiry", "update")
	return nil
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteInquiry(ctx, id); err != nil {
		return storeErr("delete inquiry", err)
	}
	s.metrics.IncContentChange("inquiry", "delete")
	return nil
}
