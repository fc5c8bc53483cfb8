package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/resilience/circuitbreaker"
	"newsdiary/internal/usecase/fetch"
)

const (
	// DefaultTimeout bounds one category scrape including worker startup.
	DefaultTimeout = 60 * time.Second

	// waitDelay is how long a killed worker may hold its output pipes open.
	waitDelay = 2 * time.Second

	// childMargin leaves the worker time to report its own timeout.
	childMargin = 2 * time.Second

	maxStderrInError = 512
)

// ProcessConfig configures the worker processes.
type ProcessConfig struct {
	// Executable is the binary to launch; empty means the running binary.
	Executable string
	// Args are passed to the executable before anything else.
	Args []string
	// Env is appended to the parent environment.
	Env []string

	Timeout   time.Duration
	Engine    string
	MaxItems  int
	UserAgent string
	BaseURL   string

	// MinInterval spaces worker launches; 0 disables spacing.
	MinInterval time.Duration
}

// ProcessFetcher scrapes each category in a fresh worker process so that a
// hung or crashing page engine cannot take the caller down with it.
type ProcessFetcher struct {
	cfg     ProcessConfig
	limiter *rate.Limiter

	mu       sync.Mutex
	breakers map[entity.Category]*circuitbreaker.CircuitBreaker
}

var _ fetch.Fetcher = (*ProcessFetcher)(nil)

// NewProcessFetcher resolves the executable and applies defaults.
func NewProcessFetcher(cfg ProcessConfig) (*ProcessFetcher, error) {
	if cfg.Executable == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable: %w", err)
		}
		cfg.Executable = exe
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &ProcessFetcher{
		cfg:      cfg,
		limiter:  rate.NewLimiter(limit, 1),
		breakers: make(map[entity.Category]*circuitbreaker.CircuitBreaker),
	}, nil
}

// Fetch scrapes one category. Every failure is returned as *fetch.ScrapeError.
func (p *ProcessFetcher) Fetch(ctx context.Context, category entity.Category) ([]entity.Article, error) {
	if !category.Valid() {
		return nil, &fetch.ScrapeError{
			Category: category,
			Err:      fmt.Errorf("%w: %q", entity.ErrInvalidCategory, string(category)),
		}
	}

	cb := p.breaker(category)
	var articles []entity.Article
	err := cb.Do(func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		var runErr error
		articles, runErr = p.run(ctx, category)
		return runErr
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		slog.WarnContext(ctx, "scrape skipped, circuit open",
			slog.String("category", category.String()),
			slog.String("circuit", cb.Name()))
		err = fmt.Errorf("%w: %w", fetch.ErrSourceUnavailable, err)
	}
	if err != nil {
		return nil, &fetch.ScrapeError{Category: category, Err: err}
	}
	return articles, nil
}

func (p *ProcessFetcher) breaker(c entity.Category) *circuitbreaker.CircuitBreaker {
	p.mu.Lock()
	defer p.mu.Unlock()
	cb, ok := p.breakers[c]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.ScraperConfig(c.String()))
		p.breakers[c] = cb
	}
	return cb
}

// OpenCircuits lists the categories whose breaker is currently open,
// in canonical category order.
func (p *ProcessFetcher) OpenCircuits() []entity.Category {
	p.mu.Lock()
	defer p.mu.Unlock()
	var open []entity.Category
	for _, c := range entity.AllCategories() {
		if cb, ok := p.breakers[c]; ok && cb.IsOpen() {
			open = append(open, c)
		}
	}
	return open
}

func (p *ProcessFetcher) run(ctx context.Context, category entity.Category) ([]entity.Article, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.cfg.Executable, p.cfg.Args...)
	cmd.Env = append(os.Environ(), p.cfg.Env...)
	cmd.Env = append(cmd.Env, p.childEnv(category)...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", fetch.ErrFetchTimeout, p.cfg.Timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: worker failed: %v%s", fetch.ErrFetchParse, err, stderrTail(stderr.String()))
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: worker produced no output%s", fetch.ErrFetchParse, stderrTail(stderr.String()))
	}

	articles, err := decodeMessage(out)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "scrape worker finished",
		slog.String("category", category.String()),
		slog.Int("articles", len(articles)),
		slog.Duration("duration", time.Since(start)))
	return articles, nil
}

func (p *ProcessFetcher) childEnv(category entity.Category) []string {
	childTimeout := p.cfg.Timeout - childMargin
	if childTimeout <= 0 {
		childTimeout = p.cfg.Timeout
	}
	env := []string{
		EnvChild + "=1",
		EnvCategory + "=" + category.String(),
		EnvTimeout + "=" + childTimeout.String(),
	}
	if p.cfg.Engine != "" {
		env = append(env, EnvEngine+"="+p.cfg.Engine)
	}
	if p.cfg.MaxItems > 0 {
		env = append(env, EnvMaxItems+"="+strconv.Itoa(p.cfg.MaxItems))
	}
	if p.cfg.UserAgent != "" {
		env = append(env, EnvUserAgent+"="+p.cfg.UserAgent)
	}
	if p.cfg.BaseURL != "" {
		env = append(env, EnvBaseURL+"="+p.cfg.BaseURL)
	}
	return env
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) > maxStderrInError {
		s = s[len(s)-maxStderrInError:]
	}
	return ": " + s
}
