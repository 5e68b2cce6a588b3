package webhook

import (
	"testing"
	"time"
)

func TestNextRetryDelay(t *testing.T) {
	tests := []struct {
		attempt  int
		minDelay time.Duration
		maxDelay time.Duration
	}{
		{0, 1600 * time.Millisecond, 2400 * time.Millisecond},
		{1, 8 * time.Second, 12 * time.Second},
		{2, 24 * time.Second, 36 * time.Second},
		{3, 96 * time.Second, 144 * time.Second},
		{10, 96 * time.Second, 144 * time.Second},
		{-1, 1600 * time.Millisecond, 2400 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			for i := 0; i < 10; i++ {
				delay := NextRetryDelay(tt.attempt)
				if delay < tt.minDelay || delay > tt.maxDelay {
					t.Errorf("NextRetryDelay(%d) = %v, want between %v and %v",
						tt.attempt, delay, tt.minDelay, tt.maxDelay)
				}
			}
		})
	}
}

func TestIsExhausted(t *testing.T) {
	tests := []struct {
		attempts int
		max      int
		want     bool
	}{
		{0, 4, false},
		{3, 4, false},
		{4, 4, true},
		{5, 4, true},
	}
	for _, tt := range tests {
		if got := IsExhausted(tt.attempts, tt.max); got != tt.want {
			t.Errorf("IsExhausted(%d, %d) = %v, want %v", tt.attempts, tt.max, got, tt.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	for status, want := range map[int]bool{
		400: false,
		401: false,
		404: false,
		408: true,
		429: true,
		500: true,
		503: true,
	} {
		if got := retryable(status); got != want {
			t.Errorf("retryable(%d) = %v, want %v", status, got, want)
		}
	}
}
