// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Auth metrics
	IncLogin(result string)        // result: "success", "invalid", "error"
	IncAuthRejected(reason string) // reason: "missing", "malformed", "bad_signature", "expired", "revoked"
	IncRateLimited(scope string)   // scope: "login", "inquiry"

	// Content management metrics
	IncContentChange(resource, op string) // op: "create", "update", "delete"
	IncInquirySubmitted()
	IncNotification(status string) // status: "delivered", "failed", "skipped", "dropped"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
