// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Collection metrics track scraping and merging
var (
	// ArticlesScrapedTotal counts articles returned by the scraper per category
	ArticlesScrapedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdiary_articles_scraped_total",
			Help: "Total number of articles scraped per category",
		},
		[]string{"category"},
	)

	// ScrapeDuration measures one category scrape including child process startup
	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdiary_scrape_duration_seconds",
			Help:    "Time taken to scrape one category",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"category"},
	)

	// ScrapeErrorsTotal counts failed category scrapes by failure kind
	ScrapeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdiary_scrape_errors_total",
			Help: "Total number of failed category scrapes",
		},
		[]string{"category", "error_type"}, // error_type: timeout, parse, circuit_open, other
	)

	// CollectRunsTotal counts collection runs by outcome
	CollectRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdiary_collect_runs_total",
			Help: "Total number of collection runs",
		},
		[]string{"status"}, // status: success, failure
	)

	// CollectDuration measures a full collection run
	CollectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsdiary_collect_duration_seconds",
			Help:    "Time taken by a full collection run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// ArticlesAddedTotal counts articles that were new to the store after a merge
	ArticlesAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsdiary_articles_added_total",
			Help: "Total number of articles added to the store by collection runs",
		},
	)

	// LastCollectSuccess records when the last collection run saved successfully
	LastCollectSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdiary_last_collect_success_timestamp_seconds",
			Help: "Unix time of the last successful collection run",
		},
	)
)

// Store metrics track collection sizes and document I/O
var (
	// ArticlesStored tracks the number of stored articles
	ArticlesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdiary_articles_stored",
			Help: "Number of articles in the store",
		},
	)

	// DiaryEntriesStored tracks the number of diary entries
	DiaryEntriesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdiary_diary_entries_stored",
			Help: "Number of diary entries in the store",
		},
	)

	// CalendarIssuesStored tracks the number of calendar issues
	CalendarIssuesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdiary_calendar_issues_stored",
			Help: "Number of calendar issues in the store",
		},
	)

	// StoreOperationDuration measures whole-document loads and saves
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdiary_store_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation", "document"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordStoreOperation records the duration of a document load or save
func RecordStoreOperation(operation, document string, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(operation, document).Observe(duration.Seconds())
}
