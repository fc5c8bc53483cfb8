// Package app wires storage, repositories, use cases and the scraper from
// an AppConfig. Every binary builds its components here.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"newsdiary/internal/config"
	"newsdiary/internal/infra/adapter/persistence/jsondoc"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/infra/scraper"
	"newsdiary/internal/observability/metrics"
	"newsdiary/internal/repository"
	artUC "newsdiary/internal/usecase/article"
	"newsdiary/internal/usecase/calendar"
	diaryUC "newsdiary/internal/usecase/diary"
	fetchUC "newsdiary/internal/usecase/fetch"
)

// Components are the long-lived objects shared by the binaries.
type Components struct {
	Store docstore.Store

	ArticleRepo repository.ArticleRepository
	DiaryRepo   repository.DiaryRepository
	IssueRepo   repository.IssueRepository

	Articles *artUC.Service
	Diary    *diaryUC.Service
	Calendar *calendar.Service
	Collect  *fetchUC.Service

	// Fetcher scrapes in worker processes; it is also the circuit reporter.
	Fetcher *scraper.ProcessFetcher

	closer io.Closer
}

// Build opens the configured store and assembles every service.
func Build(ctx context.Context, cfg *config.AppConfig) (*Components, error) {
	dsn := cfg.Storage.DSN
	if cfg.Storage.Driver == docstore.DriverSQLite && dsn == "" {
		dsn = filepath.Join(cfg.DataDir, "newsdiary.db")
	}

	store, closer, err := docstore.Open(ctx, docstore.Options{
		Driver:  cfg.Storage.Driver,
		DataDir: cfg.DataDir,
		DSN:     dsn,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	fetcher, err := scraper.NewProcessFetcher(scraper.ProcessConfig{
		Timeout:     cfg.Scraper.Timeout,
		Engine:      cfg.Scraper.Engine,
		MaxItems:    cfg.Scraper.MaxItems,
		UserAgent:   cfg.Scraper.UserAgent,
		BaseURL:     cfg.Scraper.BaseURL,
		MinInterval: cfg.Scraper.MinInterval,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	c := &Components{
		Store:       store,
		ArticleRepo: jsondoc.NewArticleRepo(store),
		DiaryRepo:   jsondoc.NewDiaryRepo(store),
		IssueRepo:   jsondoc.NewIssueRepo(store),
		Fetcher:     fetcher,
		closer:      closer,
	}
	c.Articles = artUC.NewService(c.ArticleRepo, c.DiaryRepo)
	c.Diary = diaryUC.NewService(c.DiaryRepo)
	c.Calendar = calendar.NewService(c.IssueRepo)
	c.Collect = fetchUC.NewService(fetcher, c.ArticleRepo, cfg.Scraper.Parallelism)
	return c, nil
}

// Close releases the store.
func (c *Components) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// CheckStorage loads every collection. It fails when a document is
// unreadable or corrupt.
func (c *Components) CheckStorage(ctx context.Context) error {
	_, _, _, err := c.load(ctx)
	return err
}

// RefreshCounts publishes the stored collection sizes as gauges.
func (c *Components) RefreshCounts(ctx context.Context) {
	articles, diary, issues, err := c.load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "stored counts not refreshed", slog.Any("error", err))
		return
	}
	metrics.UpdateStoredCounts(articles, diary, issues)
}

func (c *Components) load(ctx context.Context) (articles, diary, issues int, err error) {
	a, errA := c.ArticleRepo.Load(ctx)
	d, errD := c.DiaryRepo.Load(ctx)
	i, errI := c.IssueRepo.Load(ctx)
	if err := errors.Join(errA, errD, errI); err != nil {
		return 0, 0, 0, err
	}
	return len(a), len(d), len(i), nil
}
