package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FetchRequests counts remote calls by asset kind and outcome.
	FetchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_fetch_requests_total",
		Help: "Remote fetch calls by kind and status.",
	}, []string{"kind", "status"})

	// FetchDuration observes remote call latency by asset kind.
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_fetch_duration_seconds",
		Help:    "Remote fetch latency by kind.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// Submissions counts finished submissions by outcome.
	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_submissions_total",
		Help: "Submissions by outcome (ok, empty, immaterial, invalid, failed).",
	}, []string{"outcome"})

	// TruncatedResults counts addresses whose asset listing exceeded one page.
	TruncatedResults = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_truncated_results_total",
		Help: "Addresses with more assets than the first page returned.",
	})

	// MalformedItems counts fetched items dropped before normalization.
	MalformedItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_malformed_items_total",
		Help: "Fetched items dropped for missing fields, by kind.",
	}, []string{"kind"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry. Safe to call twice.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchRequests, FetchDuration, Submissions, TruncatedResults, MalformedItems)
	})
}

// ObserveFetch records one remote call started at start.
func ObserveFetch(kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	FetchRequests.WithLabelValues(kind, status).Inc()
	FetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
