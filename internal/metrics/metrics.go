// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Auth outcomes recorded by IncAuthOutcome.
const (
	AuthOK           = "ok"
	AuthMissing      = "missing"
	AuthMalformed    = "malformed"
	AuthUnknown      = "unknown"
	AuthExpired      = "expired"
	AuthStoreFailure = "store_error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Authentication gate metrics
	IncAuthOutcome(outcome string)
	ObserveAuthDuration(duration time.Duration)
	IncExpiredSessionCleaned()
	IncSessionCacheHit()
	IncSessionCacheMiss()

	// Resource management metrics
	IncApplicationCreated()
	IncApplicationUpdated()
	IncApplicationDeleted()
	IncTemplateCreated()
	IncTemplateUpdated()
	IncTemplateDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
