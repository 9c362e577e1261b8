// Package metrics exposes Prometheus instrumentation for option storage.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for option storage. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Slot metrics
	slotWritesTotal       *prometheus.CounterVec
	recordsDefaultedTotal *prometheus.CounterVec

	// Media metrics
	commitsTotal        *prometheus.CounterVec
	commitsSkippedTotal prometheus.Counter
	commitDuration      prometheus.Histogram
	imageSizeBytes      prometheus.Gauge
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		slotWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optstore_slot_writes_total",
				Help: "Total number of record writes into the working image",
			},
			[]string{"record"},
		),

		recordsDefaultedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optstore_records_defaulted_total",
				Help: "Total number of reads that substituted defaults for an absent or corrupt record",
			},
			[]string{"record", "persisted"},
		),

		commitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optstore_commits_total",
				Help: "Total number of physical commits of the working image",
			},
			[]string{"status"},
		),

		commitsSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "optstore_commits_skipped_total",
				Help: "Total number of dirty-checked saves that found nothing to commit",
			},
		),

		commitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optstore_commit_duration_seconds",
				Help:    "Physical commit duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		imageSizeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "optstore_image_size_bytes",
				Help: "Size of the emulated EEPROM image in bytes",
			},
		),
	}

	return m
}

// RecordSlotWrite records a write of the named record into the image
func (m *Metrics) RecordSlotWrite(record string) {
	if m == nil {
		return
	}
	m.slotWritesTotal.WithLabelValues(record).Inc()
}

// RecordDefaulted records a read that fell back to defaults
func (m *Metrics) RecordDefaulted(record string, persisted bool) {
	if m == nil {
		return
	}
	label := "false"
	if persisted {
		label = "true"
	}
	m.recordsDefaultedTotal.WithLabelValues(record, label).Inc()
}

// RecordCommit records a physical commit
func (m *Metrics) RecordCommit(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.commitsTotal.WithLabelValues(status).Inc()
	m.commitDuration.Observe(duration.Seconds())
}

// RecordCommitSkipped records a dirty-checked save that elided its commit
func (m *Metrics) RecordCommitSkipped() {
	if m == nil {
		return
	}
	m.commitsSkippedTotal.Inc()
}

// SetImageSize updates the image size gauge
func (m *Metrics) SetImageSize(size int) {
	if m == nil {
		return
	}
	m.imageSizeBytes.Set(float64(size))
}
