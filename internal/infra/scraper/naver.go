// Package scraper collects article listings from the news portal.
//
// NaverScraper does the actual page load and parsing and is meant to run
// inside an isolated worker process (see RunChild). ProcessFetcher is the
// parent side: it launches one worker per category and enforces the deadline.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/pkg/idgen"
	"newsdiary/internal/usecase/fetch"
)

// NaverScraper reads the section listing of one category.
type NaverScraper struct {
	loader   PageLoader
	baseURL  string
	maxItems int
	ids      *idgen.Generator
	now      func() time.Time
}

// NewNaverScraper creates a scraper reading section pages from baseURL.
// An empty baseURL means BaseURL; maxItems <= 0 means DefaultMaxItems.
func NewNaverScraper(loader PageLoader, baseURL string, maxItems int) *NaverScraper {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &NaverScraper{
		loader:   loader,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxItems: maxItems,
		ids:      idgen.New(),
		now:      time.Now,
	}
}

var _ fetch.Fetcher = (*NaverScraper)(nil)

// Fetch loads and parses the section page of category.
func (s *NaverScraper) Fetch(ctx context.Context, category entity.Category) ([]entity.Article, error) {
	pageURL, err := SourceURL(s.baseURL, category)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	html, err := s.loader.Load(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "section page loaded",
		slog.String("category", category.String()),
		slog.String("url", pageURL),
		slog.Int("bytes", len(html)),
		slog.Duration("duration", time.Since(start)))

	return s.Parse(strings.NewReader(html), category)
}

// Parse extracts at most maxItems articles from a section page.
// Nodes without a title or a link are skipped. A page without any listing
// node is reported as ErrFetchParse, since the layout no longer matches.
func (s *NaverScraper) Parse(r io.Reader, category entity.Category) ([]entity.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fetch.ErrFetchParse, err)
	}

	nodes := doc.Find(ListSelector)
	if nodes.Length() == 0 {
		return nil, fmt.Errorf("%w: no listing nodes match %q", fetch.ErrFetchParse, ListSelector)
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	collectedAt := entity.NewTimestamp(s.now())
	articles := make([]entity.Article, 0, min(nodes.Length(), s.maxItems))

	nodes.EachWithBreak(func(i int, node *goquery.Selection) bool {
		if i >= s.maxItems {
			return false
		}
		link := node.Find(TitleSelector).First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			slog.Debug("skipping listing node without title or link",
				slog.String("category", category.String()),
				slog.Int("index", i))
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			slog.Debug("skipping listing node with malformed link",
				slog.String("category", category.String()),
				slog.String("href", href))
			return true
		}
		resolved := base.ResolveReference(ref).String()
		if err := entity.ValidateURL(resolved); err != nil {
			slog.Debug("skipping listing node with unusable link",
				slog.String("category", category.String()),
				slog.String("href", href),
				slog.Any("error", err))
			return true
		}

		articles = append(articles, entity.Article{
			ID:          fmt.Sprintf("news_%s_%s_%d", category, s.ids.Stamp(), i),
			Title:       title,
			URL:         resolved,
			Category:    category,
			CollectedAt: collectedAt,
			Source:      entity.DefaultSource,
		})
		return true
	})

	return articles, nil
}
