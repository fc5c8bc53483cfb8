// Package fetch provides the collection use cases: scraping every requested
// news category and merging the results into the stored article collection.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"newsdiary/internal/domain/entity"
)

// Sentinel errors for fetch use case operations.
var (
	// ErrFetchTimeout indicates that a category scrape exceeded its hard deadline.
	// The isolated worker was killed.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrFetchParse indicates that the source page could not be reduced to articles.
	// This happens when the listing layout changed or the worker produced no usable result.
	ErrFetchParse = errors.New("source page could not be parsed")

	// ErrSourceUnavailable indicates that a category is skipped because its
	// recent scrapes kept failing.
	ErrSourceUnavailable = errors.New("source temporarily unavailable")
)

// ScrapeError reports a failed scrape of one category.
type ScrapeError struct {
	Category entity.Category
	Err      error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape %s: %v", e.Category, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Fetcher scrapes the listing of a single category.
type Fetcher interface {
	Fetch(ctx context.Context, category entity.Category) ([]entity.Article, error)
}
