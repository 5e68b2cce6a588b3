package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/oklog/ulid/v2"
)

// EventInquiryCreated is sent when a visitor submits the contact form.
const EventInquiryCreated = "inquiry.created"

// DefaultQueueSize is the number of events buffered before new ones are dropped.
const DefaultQueueSize = 64

// Event is the JSON body posted to the notification endpoint.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type inquiryData struct {
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInquiryEvent builds the inquiry.created event for a stored inquiry.
func NewInquiryEvent(inq *model.Inquiry) Event {
	return Event{
		ID:         ulid.Make().String(),
		Type:       EventInquiryCreated,
		OccurredAt: inq.CreatedAt.UTC(),
		Data: inquiryData{
			Reference: inq.Reference,
			Name:      inq.Name,
			Email:     inq.Email,
			Phone:     inq.Phone,
			Subject:   inq.Subject,
			Message:   inq.Message,
			CreatedAt: inq.CreatedAt.UTC(),
		},
	}
}

// Notifier posts signed events to a single endpoint from a background loop.
type Notifier struct {
	targetURL   string
	secret      string
	client      *http.Client
	logger      *slog.Logger
	metrics     metrics.Recorder
	queue       chan Event
	maxAttempts int
	backoff     func(attempt int) time.Duration
	now         func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient overrides the delivery client.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// WithMetrics sets the recorder for delivery outcomes.
func WithMetrics(r metrics.Recorder) Option {
	return func(n *Notifier) { n.metrics = r }
}

// WithBackoff overrides the retry schedule.
func WithBackoff(f func(attempt int) time.Duration) Option {
	return func(n *Notifier) { n.backoff = f }
}

// WithMaxAttempts sets the number of delivery attempts per event.
func WithMaxAttempts(attempts int) Option {
	return func(n *Notifier) {
		if attempts > 0 {
			n.maxAttempts = attempts
		}
	}
}

// WithQueueSize sets the event buffer size.
func WithQueueSize(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.queue = make(chan Event, size)
		}
	}
}

// NewNotifier creates a notifier for targetURL. Call Run to start delivery.
func NewNotifier(targetURL, secret string, logger *slog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		targetURL:   targetURL,
		secret:      secret,
		client:      NewHTTPClient(),
		logger:      logger.With("component", "webhook.notifier", "target_host", ExtractHost(targetURL)),
		metrics:     metrics.NewNoop(),
		queue:       make(chan Event, DefaultQueueSize),
		maxAttempts: DefaultMaxAttempts,
		backoff:     NextRetryDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enqueue hands an event to the delivery loop without blocking.
// It reports false when the queue is full and the event was dropped.
func (n *Notifier) Enqueue(evt Event) bool {
	select {
	case n.queue <- evt:
		return true
	default:
		n.metrics.IncNotification("dropped")
		n.logger.Warn("notification queue full, dropping event",
			"event", evt.Type,
			"delivery_id", evt.ID,
		)
		return false
	}
}

// Run delivers queued events until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info("notifier started", "max_attempts", n.maxAttempts)
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopped", "pending", len(n.queue))
			return
		case evt := <-n.queue:
			n.deliverWithRetry(ctx, evt)
		}
	}
}

func (n *Notifier) deliverWithRetry(ctx context.Context, evt Event) {
	body, err := json.Marshal(evt)
	if err != nil {
		n.metrics.IncNotification("failed")
		n.logger.Error("marshal notification", "delivery_id", evt.ID, "error", err)
		return
	}

	for attempt := 1; ; attempt++ {
		status, err := n.send(ctx, evt, body)
		if err == nil {
			n.metrics.IncNotification("delivered")
			n.logger.Info("notification delivered",
				"event", evt.Type,
				"delivery_id", evt.ID,
				"attempt", attempt,
				"status", status,
			)
			return
		}

		final := IsExhausted(attempt, n.maxAttempts) || (status != 0 && !retryable(status))
		if final {
			n.metrics.IncNotification("failed")
			n.logger.Error("notification failed",
				"event", evt.Type,
				"delivery_id", evt.ID,
				"attempt", attempt,
				"status", status,
				"error", err,
			)
			return
		}

		delay := n.backoff(attempt - 1)
		n.logger.Warn("notification attempt failed, retrying",
			"delivery_id", evt.ID,
			"attempt", attempt,
			"status", status,
			"retry_in", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			n.metrics.IncNotification("failed")
			return
		case <-timer.C:
		}
	}
}

// send performs one attempt. status is 0 when no response was received.
func (n *Notifier) send(ctx context.Context, evt Event, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.targetURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	signRequest(req, n.secret, evt, body, n.now().Unix())

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
