package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion cycle outcomes
const (
	CycleSuccess = "success"
	CycleFailure = "failure"
	CycleSkipped = "skipped"
)

// ExchangeMetrics holds the prometheus instruments for ingestion and conversion.
type ExchangeMetrics struct {
	// Ingestion
	IngestionCyclesTotal   prometheus.CounterVec
	IngestionRetriesTotal  prometheus.Counter
	IngestionFetchDuration prometheus.Histogram
	SnapshotsStoredTotal   prometheus.Counter

	// Rate reads
	RateCacheLookupsTotal  prometheus.CounterVec
	RateResolutionDuration prometheus.Histogram

	// Conversions
	ConversionsTotal prometheus.CounterVec
}

// NewExchangeMetrics registers the instruments on the given registerer.
// main passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func NewExchangeMetrics(reg prometheus.Registerer) *ExchangeMetrics {
	factory := promauto.With(reg)

	return &ExchangeMetrics{
		IngestionCyclesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingestion_cycles_total",
				Help: "Ingestion cycles by outcome (success, failure, skipped)",
			},
			[]string{"status"},
		),

		IngestionRetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ingestion_retry_attempts_total",
				Help: "Provider fetch attempts beyond the first within ingestion cycles",
			},
		),

		IngestionFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ingestion_fetch_duration_seconds",
				Help:    "Duration of provider fetches in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms, 100ms, 200ms...
			},
		),

		SnapshotsStoredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_snapshots_stored_total",
				Help: "Rate snapshots appended to the history store",
			},
		),

		RateCacheLookupsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),

		RateResolutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_resolution_duration_seconds",
				Help:    "Duration of rate resolutions in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms, 2ms, 4ms...
			},
		),

		ConversionsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Conversion requests by outcome (success, failure)",
			},
			[]string{"status"},
		),
	}
}

// RecordIngestionCycle records one finished cycle with its outcome.
func (m *ExchangeMetrics) RecordIngestionCycle(status string) {
	m.IngestionCyclesTotal.WithLabelValues(status).Inc()
}

// RecordRetryAttempt records one provider fetch retry.
func (m *ExchangeMetrics) RecordRetryAttempt() {
	m.IngestionRetriesTotal.Inc()
}

// RecordFetchDuration records how long a provider fetch took.
func (m *ExchangeMetrics) RecordFetchDuration(seconds float64) {
	m.IngestionFetchDuration.Observe(seconds)
}

// RecordSnapshotsStored records how many snapshots a cycle appended.
func (m *ExchangeMetrics) RecordSnapshotsStored(count int) {
	m.SnapshotsStoredTotal.Add(float64(count))
}

// RecordCacheLookup records a rate cache hit or miss.
func (m *ExchangeMetrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RateCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordResolutionDuration records how long a rate resolution took.
func (m *ExchangeMetrics) RecordResolutionDuration(seconds float64) {
	m.RateResolutionDuration.Observe(seconds)
}

// RecordConversion records a conversion outcome.
func (m *ExchangeMetrics) RecordConversion(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	m.ConversionsTotal.WithLabelValues(status).Inc()
}
