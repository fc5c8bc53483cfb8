package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"

	"newsdiary/internal/resilience/retry"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Page loading engines.
const (
	EngineHTTP    = "http"
	EngineBrowser = "browser"
)

// PageLoader returns the HTML of a page.
type PageLoader interface {
	Load(ctx context.Context, url string) (string, error)
}

// NewLoader builds the loader for the given engine.
func NewLoader(engine, userAgent string) (PageLoader, error) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	switch engine {
	case "", EngineHTTP:
		return NewHTTPLoader(&http.Client{Timeout: 30 * time.Second}, userAgent), nil
	case EngineBrowser:
		return &BrowserLoader{UserAgent: userAgent}, nil
	default:
		return nil, fmt.Errorf("unknown scraper engine %q", engine)
	}
}

// HTTPLoader fetches server-rendered pages with a plain GET.
type HTTPLoader struct {
	client    *http.Client
	userAgent string
}

func NewHTTPLoader(client *http.Client, userAgent string) *HTTPLoader {
	return &HTTPLoader{client: client, userAgent: userAgent}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	// Limit body size to prevent memory exhaustion
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return "", fmt.Errorf("response body exceeds %d bytes", maxBodySize)
	}
	return string(body), nil
}

// BrowserLoader renders the page in headless Chrome and returns the final DOM.
// A Chrome or Chromium binary must be installed; ExecPath overrides discovery.
type BrowserLoader struct {
	UserAgent string
	ExecPath  string
}

func (l *BrowserLoader) Load(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(l.UserAgent),
		chromedp.DisableGPU,
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}
