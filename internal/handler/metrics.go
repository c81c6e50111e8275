package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/aisboost/aisboost/internal/metrics"
)

// MetricsHandler renders in-process counters in Prometheus text format.
// It backs /metrics when the in-memory recorder is selected.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics writes the current snapshot.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	outcomes := make([]string, 0, len(snap.AuthOutcomes))
	for k := range snap.AuthOutcomes {
		outcomes = append(outcomes, k)
	}
	sort.Strings(outcomes)
	for _, k := range outcomes {
		writeMetric(w, "aisboost_auth_requests_total{outcome=%q} %d\n", k, snap.AuthOutcomes[k])
	}
	writeMetric(w, "aisboost_auth_duration_seconds_count %d\n", snap.AuthDurationCount)
	writeMetric(w, "aisboost_auth_duration_seconds_sum %.6f\n", float64(snap.AuthDurationTotalNs)/1e9)
	writeMetric(w, "aisboost_auth_expired_sessions_cleaned_total %d\n", snap.ExpiredSessionsCleaned)

	writeMetric(w, "aisboost_session_cache_lookups_total{result=\"hit\"} %d\n", snap.SessionCacheHits)
	writeMetric(w, "aisboost_session_cache_lookups_total{result=\"miss\"} %d\n", snap.SessionCacheMisses)

	writeMetric(w, "aisboost_applications_mutations_total{op=\"create\"} %d\n", snap.ApplicationsCreated)
	writeMetric(w, "aisboost_applications_mutations_total{op=\"update\"} %d\n", snap.ApplicationsUpdated)
	writeMetric(w, "aisboost_applications_mutations_total{op=\"delete\"} %d\n", snap.ApplicationsDeleted)

	writeMetric(w, "aisboost_templates_mutations_total{op=\"create\"} %d\n", snap.TemplatesCreated)
	writeMetric(w, "aisboost_templates_mutations_total{op=\"update\"} %d\n", snap.TemplatesUpdated)
	writeMetric(w, "aisboost_templates_mutations_total{op=\"delete\"} %d\n", snap.TemplatesDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
