package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/observability/slo"
	"newsdiary/internal/usecase/fetch"
)

type stubCollector struct {
	mu       sync.Mutex
	calls    int
	gotCats  []entity.Category
	deadline bool
	result   *fetch.CollectResult
	err      error
	// block, when set, holds Collect until it is closed
	block   chan struct{}
	started chan struct{}
}

func (s *stubCollector) Collect(ctx context.Context, cats []entity.Category) (map[entity.Category][]entity.Article, *fetch.CollectResult, error) {
	s.mu.Lock()
	s.calls++
	s.gotCats = cats
	_, s.deadline = ctx.Deadline()
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, nil, s.err
	}
	return map[entity.Category][]entity.Article{}, s.result, nil
}

func TestCollectJob_Success(t *testing.T) {
	collector := &stubCollector{result: &fetch.CollectResult{
		RunID:            "run-1",
		Collected:        12,
		Added:            5,
		Duplicates:       7,
		Total:            40,
		FailedCategories: []entity.Category{entity.CategoryWorld},
	}}
	m := newTestMetrics()
	cats := []entity.Category{entity.CategoryPolitics, entity.CategoryWorld}
	job := NewCollectJob(collector, cats, time.Minute, m, quietLogger())

	status := job.Run(context.Background())

	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, cats, collector.gotCats)
	assert.True(t, collector.deadline, "timeout should bound the run")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ArticlesAddedTotal))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccessTimestamp), 0.0)
	assert.Equal(t, 0.5, testutil.ToFloat64(slo.CategoryCoverage))
}

func TestCollectJob_Failure(t *testing.T) {
	collector := &stubCollector{err: errors.New("save articles: postgres://app:hunter2@db/newsdiary refused")}
	m := newTestMetrics()
	job := NewCollectJob(collector, nil, 0, m, quietLogger())

	status := job.Run(context.Background())

	assert.Equal(t, StatusFailure, status)
	assert.False(t, collector.deadline)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccessTimestamp))
}

func TestCollectJob_SkipsOverlappingRun(t *testing.T) {
	collector := &stubCollector{
		result:  &fetch.CollectResult{},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	m := newTestMetrics()
	job := NewCollectJob(collector, nil, 0, m, quietLogger())

	first := make(chan string, 1)
	go func() { first <- job.Run(context.Background()) }()
	<-collector.started

	assert.Equal(t, StatusSkipped, job.Run(context.Background()))

	close(collector.block)
	assert.Equal(t, StatusSuccess, <-first)
	assert.Equal(t, 1, collector.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues(StatusSkipped)))

	// the guard is released after the run
	collector.block = nil
	collector.started = nil
	assert.Equal(t, StatusSuccess, job.Run(context.Background()))
}

func TestCollectJob_NilMetrics(t *testing.T) {
	job := NewCollectJob(&stubCollector{result: &fetch.CollectResult{}}, nil, 0, nil, nil)

	require.NotPanics(t, func() {
		assert.Equal(t, StatusSuccess, job.Run(context.Background()))
	})
}
