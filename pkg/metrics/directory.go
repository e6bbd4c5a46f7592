package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DirectoryMetrics records vendor directory operations.
type DirectoryMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
	flushes  prometheus.Counter
}

// NewDirectoryMetrics registers the directory metrics on the provided registerer.
func NewDirectoryMetrics(reg prometheus.Registerer) *DirectoryMetrics {
	if reg == nil {
		return &DirectoryMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_operation_duration_seconds",
		Help:    "Duration of vendor directory operations including simulated latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_operation_failures_total",
		Help: "Failed vendor directory operations.",
	}, []string{"op"})
	flushes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_snapshot_flushes_total",
		Help: "Whole-blob flushes of the vendor record set to durable storage.",
	})
	reg.MustRegister(duration, failure, flushes)
	return &DirectoryMetrics{
		duration: duration,
		failure:  failure,
		flushes:  flushes,
	}
}

// ObserveDuration records the duration for the named operation.
func (d *DirectoryMetrics) ObserveDuration(op string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the named operation.
func (d *DirectoryMetrics) IncFailure(op string) {
	if d == nil || d.failure == nil {
		return
	}
	d.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFlush counts a durable flush.
func (d *DirectoryMetrics) IncFlush() {
	if d == nil || d.flushes == nil {
		return
	}
	d.flushes.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
