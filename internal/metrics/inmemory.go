package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests        uint64
	Logins              map[string]uint64
	AuthRejected        map[string]uint64
	RateLimited         map[string]uint64
	ContentChanges      map[string]uint64 // keyed "resource/op"
	InquiriesSubmitted  uint64
	Notifications       map[string]uint64
	HTTPDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{snap: Snapshot{
		Logins:         map[string]uint64{},
		AuthRejected:   map[string]uint64{},
		RateLimited:    map[string]uint64{},
		ContentChanges: map[string]uint64{},
		Notifications:  map[string]uint64{},
	}}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.snap
	out.Logins = copyCounts(m.snap.Logins)
	out.AuthRejected = copyCounts(m.snap.AuthRejected)
	out.RateLimited = copyCounts(m.snap.RateLimited)
	out.ContentChanges = copyCounts(m.snap.ContentChanges)
	out.Notifications = copyCounts(m.snap.Notifications)
	return out
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *InMemoryRecorder) inc(counts map[string]uint64, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

// ObserveHTTPRequest counts a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(_, _ string, _ int, duration time.Duration) {
	m.mu.Lock()
	m.snap.HTTPRequests++
	m.snap.HTTPDurationTotalNs += duration.Nanoseconds()
	m.mu.Unlock()
}

// IncLogin counts a login attempt by result.
func (m *InMemoryRecorder) IncLogin(result string) { m.inc(m.snap.Logins, result) }

// IncAuthRejected counts a rejected bearer token by reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) { m.inc(m.snap.AuthRejected, reason) }

// IncRateLimited counts a throttled request by scope.
func (m *InMemoryRecorder) IncRateLimited(scope string) { m.inc(m.snap.RateLimited, scope) }

// IncContentChange counts an admin edit.
func (m *InMemoryRecorder) IncContentChange(resource, op string) {
	m.inc(m.snap.ContentChanges, resource+"/"+op)
}

// IncInquirySubmitted counts a public inquiry.
func (m *InMemoryRecorder) IncInquirySubmitted() {
	m.mu.Lock()
	m.snap.InquiriesSubmitted++
	m.mu.Unlock()
}

// IncNotification counts an inquiry notification outcome.
func (m *InMemoryRecorder) IncNotification(status string) { m.inc(m.snap.Notifications, status) }
