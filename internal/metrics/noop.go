package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (n *NoopRecorder) IncLogin(string)                                       {}
func (n *NoopRecorder) IncAuthRejected(string)                                {}
func (n *NoopRecorder) IncRateLimited(string)                                 {}
func (n *NoopRecorder) IncContentChange(string, string)                       {}
func (n *NoopRecorder) IncInquirySubmitted()                                  {}
func (n *NoopRecorder) IncNotification(string)                                {}
