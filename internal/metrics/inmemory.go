package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AuthOutcomes           map[string]uint64
	AuthDurationCount      uint64
	AuthDurationTotalNs    int64
	ExpiredSessionsCleaned uint64
	SessionCacheHits       uint64
	SessionCacheMisses     uint64
	ApplicationsCreated    uint64
	ApplicationsUpdated    uint64
	ApplicationsDeleted    uint64
	TemplatesCreated       uint64
	TemplatesUpdated       uint64
	TemplatesDeleted       uint64
}

// InMemoryRecorder keeps counters in process memory. It backs the "memory"
// metrics backend and tests.
type InMemoryRecorder struct {
	mu           sync.Mutex
	authOutcomes map[string]uint64

	authDurationCount      uint64
	authDurationTotalNs    int64
	expiredSessionsCleaned uint64
	sessionCacheHits       uint64
	sessionCacheMisses     uint64
	applicationsCreated    uint64
	applicationsUpdated    uint64
	applicationsDeleted    uint64
	templatesCreated       uint64
	templatesUpdated       uint64
	templatesDeleted       uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{authOutcomes: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	outcomes := make(map[string]uint64, len(m.authOutcomes))
	for k, v := range m.authOutcomes {
		outcomes[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		AuthOutcomes:           outcomes,
		AuthDurationCount:      atomic.LoadUint64(&m.authDurationCount),
		AuthDurationTotalNs:    atomic.LoadInt64(&m.authDurationTotalNs),
		ExpiredSessionsCleaned: atomic.LoadUint64(&m.expiredSessionsCleaned),
		SessionCacheHits:       atomic.LoadUint64(&m.sessionCacheHits),
		SessionCacheMisses:     atomic.LoadUint64(&m.sessionCacheMisses),
		ApplicationsCreated:    atomic.LoadUint64(&m.applicationsCreated),
		ApplicationsUpdated:    atomic.LoadUint64(&m.applicationsUpdated),
		ApplicationsDeleted:    atomic.LoadUint64(&m.applicationsDeleted),
		TemplatesCreated:       atomic.LoadUint64(&m.templatesCreated),
		TemplatesUpdated:       atomic.LoadUint64(&m.templatesUpdated),
		TemplatesDeleted:       atomic.LoadUint64(&m.templatesDeleted),
	}
}

// IncAuthOutcome increments the counter for an auth outcome.
func (m *InMemoryRecorder) IncAuthOutcome(outcome string) {
	m.mu.Lock()
	m.authOutcomes[outcome]++
	m.mu.Unlock()
}

// ObserveAuthDuration records authentication duration.
func (m *InMemoryRecorder) ObserveAuthDuration(duration time.Duration) {
	atomic.AddUint64(&m.authDurationCount, 1)
	atomic.AddInt64(&m.authDurationTotalNs, duration.Nanoseconds())
}

// IncExpiredSessionCleaned increments the expired session cleanup counter.
func (m *InMemoryRecorder) IncExpiredSessionCleaned() {
	atomic.AddUint64(&m.expiredSessionsCleaned, 1)
}

// IncSessionCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncSessionCacheHit() {
	atomic.AddUint64(&m.sessionCacheHits, 1)
}

// IncSessionCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncSessionCacheMiss() {
	atomic.AddUint64(&m.sessionCacheMisses, 1)
}

// IncApplicationCreated increments application created counter.
func (m *InMemoryRecorder) IncApplicationCreated() {
	atomic.AddUint64(&m.applicationsCreated, 1)
}

// IncApplicationUpdated increments application updated counter.
func (m *InMemoryRecorder) IncApplicationUpdated() {
	atomic.AddUint64(&m.applicationsUpdated, 1)
}

// IncApplicationDeleted increments application deleted counter.
func (m *InMemoryRecorder) IncApplicationDeleted() {
	atomic.AddUint64(&m.applicationsDeleted, 1)
}

// IncTemplateCreated increments template created counter.
func (m *InMemoryRecorder) IncTemplateCreated() {
	atomic.AddUint64(&m.templatesCreated, 1)
}

// IncTemplateUpdated increments template updated counter.
func (m *InMemoryRecorder) IncTemplateUpdated() {
	atomic.AddUint64(&m.templatesUpdated, 1)
}

// IncTemplateDeleted increments template deleted counter.
func (m *InMemoryRecorder) IncTemplateDeleted() {
	atomic.AddUint64(&m.templatesDeleted, 1)
}
