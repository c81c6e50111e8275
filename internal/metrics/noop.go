package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAuthOutcome is a no-op.
func (n *NoopRecorder) IncAuthOutcome(outcome string) {}

// ObserveAuthDuration is a no-op.
func (n *NoopRecorder) ObserveAuthDuration(duration time.Duration) {}

// IncExpiredSessionCleaned is a no-op.
func (n *NoopRecorder) IncExpiredSessionCleaned() {}

// IncSessionCacheHit is a no-op.
func (n *NoopRecorder) IncSessionCacheHit() {}

// IncSessionCacheMiss is a no-op.
func (n *NoopRecorder) IncSessionCacheMiss() {}

// IncApplicationCreated is a no-op.
func (n *NoopRecorder) IncApplicationCreated() {}

// IncApplicationUpdated is a no-op.
func (n *NoopRecorder) IncApplicationUpdated() {}

// IncApplicationDeleted is a no-op.
func (n *NoopRecorder) IncApplicationDeleted() {}

// IncTemplateCreated is a no-op.
func (n *NoopRecorder) IncTemplateCreated() {}

// IncTemplateUpdated is a no-op.
func (n *NoopRecorder) IncTemplateUpdated() {}

// IncTemplateDeleted is a no-op.
func (n *NoopRecorder) IncTemplateDeleted() {}
