package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// WorkerMetrics tracks scheduled collection runs:
//   - worker_collect_job_runs_total{status}: runs by success/failure/skipped
//   - worker_collect_job_duration_seconds: wall time of a run
//   - worker_collect_job_articles_added_total: new articles stored by runs
//   - worker_collect_job_last_success_timestamp: Unix time of the last success
//
// Collection-level metrics (per category scrapes, merge counts) live in
// observability/metrics; these only describe the schedule.
type WorkerMetrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	ArticlesAddedTotal   prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with the default registry.
// Call it once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return NewWorkerMetricsWith(prometheus.DefaultRegisterer)
}

// NewWorkerMetricsWith registers the worker metrics with reg.
func NewWorkerMetricsWith(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_collect_job_runs_total",
			Help: "Total number of scheduled collection runs by status",
		}, []string{"status"}),

		JobDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "worker_collect_job_duration_seconds",
			Help: "Duration of scheduled collection runs in seconds",
			// six categories at up to a minute each
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),

		ArticlesAddedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_collect_job_articles_added_total",
			Help: "Total number of new articles stored by scheduled collection runs",
		}),

		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_collect_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled collection run",
		}),
	}
}

// RecordJobRun increments the run counter for status.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes a run duration in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

// RecordArticlesAdded adds the number of articles a run stored.
func (m *WorkerMetrics) RecordArticlesAdded(count int) {
	m.ArticlesAddedTotal.Add(float64(count))
}

// RecordLastSuccess stamps the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
