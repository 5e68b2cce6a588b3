package webhook

import (
	"math/rand/v2"
	"time"
)

// Notifications retry in process, so the schedule stays short.
var retryDelays = []time.Duration{
	2 * time.Second,
	10 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

const (
	// DefaultMaxAttempts is the number of delivery attempts per event.
	DefaultMaxAttempts = 4

	// JitterFactor is the +/- fraction of jitter applied to delays.
	JitterFactor = 0.2
)

// NextRetryDelay returns the wait after the given failed attempt (0-indexed).
func NextRetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(retryDelays) {
		attempt = len(retryDelays) - 1
	}

	base := float64(retryDelays[attempt])
	jitter := (rand.Float64()*2 - 1) * base * JitterFactor
	return time.Duration(base + jitter)
}

// IsExhausted reports whether no attempts remain.
func IsExhausted(attempts, maxAttempts int) bool {
	return attempts >= maxAttempts
}

// retryable reports whether a response status is worth another attempt.
func retryable(status int) bool {
	return status == 408 || status == 429 || status >= 500
}
