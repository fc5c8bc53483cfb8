package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/observability/metrics"
	"newsdiary/internal/observability/tracing"
	"newsdiary/internal/repository"
	"newsdiary/internal/usecase/article"
)

// Service collects articles from the news portal and merges them into the
// stored collection.
type Service struct {
	Fetcher     Fetcher
	ArticleRepo repository.ArticleRepository

	// Parallelism is the number of categories scraped at once.
	// Values below 2 scrape sequentially.
	Parallelism int
}

// NewService creates a fetch Service.
func NewService(fetcher Fetcher, articleRepo repository.ArticleRepository, parallelism int) *Service {
	return &Service{
		Fetcher:     fetcher,
		ArticleRepo: articleRepo,
		Parallelism: parallelism,
	}
}

// CollectResult summarizes one collection run.
type CollectResult struct {
	RunID            string
	Collected        int
	Added            int
	Duplicates       int
	Total            int
	FailedCategories []entity.Category
	Duration         time.Duration
}

// ScrapeAll scrapes every requested category. Nil or empty categories means
// all six in canonical order. A failing category is logged and yields an
// empty slice; it never affects the others, and ScrapeAll never fails.
func (s *Service) ScrapeAll(ctx context.Context, categories []entity.Category) map[entity.Category][]entity.Article {
	results, _ := s.scrapeAll(ctx, normalizeCategories(categories))
	return results
}

func (s *Service) scrapeAll(ctx context.Context, categories []entity.Category) (map[entity.Category][]entity.Article, []entity.Category) {
	ctx, span := tracing.StartSpan(ctx, "fetch.ScrapeAll",
		attribute.Int("categories", len(categories)))
	defer span.End()

	var mu sync.Mutex
	results := make(map[entity.Category][]entity.Article, len(categories))
	failed := make(map[entity.Category]bool)

	scrape := func(c entity.Category) {
		articles, err := s.scrapeOne(ctx, c)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failed[c] = true
			articles = []entity.Article{}
		}
		results[c] = articles
	}

	if s.Parallelism > 1 {
		var eg errgroup.Group
		eg.SetLimit(s.Parallelism)
		for _, c := range categories {
			eg.Go(func() error {
				scrape(c)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for _, c := range categories {
			scrape(c)
		}
	}

	failedList := make([]entity.Category, 0, len(failed))
	for _, c := range categories {
		if failed[c] {
			failedList = append(failedList, c)
		}
	}
	span.SetAttributes(attribute.Int("failed_categories", len(failedList)))
	return results, failedList
}

func (s *Service) scrapeOne(ctx context.Context, c entity.Category) ([]entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "fetch.Fetch", attribute.String("category", c.String()))
	start := time.Now()

	articles, err := s.Fetcher.Fetch(ctx, c)
	duration := time.Since(start)
	tracing.EndSpan(span, err)

	if err != nil {
		metrics.RecordScrape(c.String(), duration, 0, errorType(err))
		slog.WarnContext(ctx, "category scrape failed",
			slog.String("category", c.String()),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, err
	}
	if articles == nil {
		articles = []entity.Article{}
	}

	metrics.RecordScrape(c.String(), duration, len(articles), "")
	slog.InfoContext(ctx, "category scraped",
		slog.String("category", c.String()),
		slog.Int("articles", len(articles)),
		slog.Duration("duration", duration))
	return articles, nil
}

// Collect scrapes the requested categories, merges the results into the
// stored collection and saves it. It returns the raw scrape results per
// category. Errors loading or saving the collection are returned.
func (s *Service) Collect(ctx context.Context, categories []entity.Category) (map[entity.Category][]entity.Article, *CollectResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	categories = normalizeCategories(categories)

	ctx, span := tracing.StartSpan(ctx, "fetch.Collect", attribute.String("run_id", runID))
	logger := slog.Default().With(slog.String("run_id", runID))

	res, stats, err := s.collect(ctx, categories)
	tracing.EndSpan(span, err)

	stats.RunID = runID
	stats.Duration = time.Since(start)
	metrics.RecordCollectRun(err == nil, stats.Duration, stats.Added)

	if err != nil {
		logger.ErrorContext(ctx, "collection failed",
			slog.Any("error", err),
			slog.Duration("duration", stats.Duration))
		return res, stats, err
	}

	logger.InfoContext(ctx, "collection completed",
		slog.Int("collected", stats.Collected),
		slog.Int("added", stats.Added),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("total", stats.Total),
		slog.Any("failed_categories", stats.FailedCategories),
		slog.Duration("duration", stats.Duration))
	return res, stats, nil
}

func (s *Service) collect(ctx context.Context, categories []entity.Category) (map[entity.Category][]entity.Article, *CollectResult, error) {
	stats := &CollectResult{}

	res, failed := s.scrapeAll(ctx, categories)
	stats.FailedCategories = failed

	var incoming []entity.Article
	for _, c := range categories {
		incoming = append(incoming, res[c]...)
	}
	stats.Collected = len(incoming)

	existing, err := s.ArticleRepo.Load(ctx)
	if err != nil {
		return res, stats, fmt.Errorf("load articles: %w", err)
	}

	merged := article.Merge(existing, incoming)
	stats.Total = len(merged)
	stats.Added = len(merged) - len(existing)
	stats.Duplicates = stats.Collected - stats.Added

	if err := s.ArticleRepo.Save(ctx, merged); err != nil {
		return res, stats, fmt.Errorf("save articles: %w", err)
	}
	return res, stats, nil
}

// normalizeCategories expands an empty request to every category and drops
// repeated entries while keeping the first occurrence.
func normalizeCategories(categories []entity.Category) []entity.Category {
	if len(categories) == 0 {
		return entity.AllCategories()
	}
	seen := make(map[entity.Category]bool, len(categories))
	out := make([]entity.Category, 0, len(categories))
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// errorType maps a scrape error to its metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrFetchParse):
		return "parse"
	case errors.Is(err, ErrSourceUnavailable):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}
