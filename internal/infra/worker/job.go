package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/respond"
	"newsdiary/internal/observability/slo"
	"newsdiary/internal/usecase/fetch"
)

// Collector runs one collection. fetch.Service implements it.
type Collector interface {
	Collect(ctx context.Context, categories []entity.Category) (map[entity.Category][]entity.Article, *fetch.CollectResult, error)
}

// CollectJob is the scheduled unit of work. Runs never overlap: a tick that
// arrives while the previous run is still going is skipped.
type CollectJob struct {
	collector  Collector
	categories []entity.Category
	timeout    time.Duration
	metrics    *WorkerMetrics
	logger     *slog.Logger

	running atomic.Bool
}

// NewCollectJob creates a job collecting categories (nil means all).
// A non-positive timeout leaves the run bounded only by the parent context.
func NewCollectJob(collector Collector, categories []entity.Category, timeout time.Duration, metrics *WorkerMetrics, logger *slog.Logger) *CollectJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectJob{
		collector:  collector,
		categories: categories,
		timeout:    timeout,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run performs one collection and reports the outcome status.
func (j *CollectJob) Run(ctx context.Context) string {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("collection skipped, previous run still in progress")
		j.record(StatusSkipped, 0, nil)
		return StatusSkipped
	}
	defer j.running.Store(false)

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	j.logger.Info("collection started")

	_, result, err := j.collector.Collect(ctx, j.categories)
	elapsed := time.Since(start)
	if err != nil {
		j.logger.Error("collection failed",
			slog.Any("error", respond.SanitizeError(err)),
			slog.Duration("duration", elapsed))
		j.record(StatusFailure, elapsed, nil)
		return StatusFailure
	}

	failed := make([]string, 0, len(result.FailedCategories))
	for _, c := range result.FailedCategories {
		failed = append(failed, c.String())
	}
	j.logger.Info("collection completed",
		slog.String("run_id", result.RunID),
		slog.Int("collected", result.Collected),
		slog.Int("added", result.Added),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("total", result.Total),
		slog.Any("failed_categories", failed),
		slog.Duration("duration", result.Duration))
	j.record(StatusSuccess, elapsed, result)
	slo.RecordCollectionRun(j.requested(), len(result.FailedCategories))
	return StatusSuccess
}

func (j *CollectJob) record(status string, elapsed time.Duration, result *fetch.CollectResult) {
	if j.metrics == nil {
		return
	}
	j.metrics.RecordJobRun(status)
	if status == StatusSkipped {
		return
	}
	j.metrics.RecordJobDuration(elapsed.Seconds())
	if result != nil {
		j.metrics.RecordArticlesAdded(result.Added)
		j.metrics.RecordLastSuccess()
	}
}

func (j *CollectJob) requested() int {
	if len(j.categories) == 0 {
		return len(entity.AllCategories())
	}
	return len(j.categories)
}
