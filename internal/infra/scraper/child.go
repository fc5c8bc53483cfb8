package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/usecase/fetch"
)

// Environment understood by the worker process.
const (
	EnvChild     = "NEWSDIARY_SCRAPE_CHILD"
	EnvCategory  = "NEWSDIARY_SCRAPE_CATEGORY"
	EnvEngine    = "NEWSDIARY_SCRAPE_ENGINE"
	EnvMaxItems  = "NEWSDIARY_SCRAPE_MAX_ITEMS"
	EnvUserAgent = "NEWSDIARY_SCRAPE_USER_AGENT"
	EnvBaseURL   = "NEWSDIARY_SCRAPE_BASE_URL"
	EnvTimeout   = "NEWSDIARY_SCRAPE_TIMEOUT"
)

// Failure kinds carried in a worker message.
const (
	kindInvalidCategory = "invalid_category"
	kindTimeout         = "timeout"
	kindParse           = "parse"
	kindOther           = "other"
)

// message is the single JSON document a worker writes to stdout.
type message struct {
	Articles []entity.Article `json:"articles"`
	Error    string           `json:"error,omitempty"`
	Kind     string           `json:"kind,omitempty"`
}

// MaybeRunChild turns the current process into a scrape worker when it was
// launched by ProcessFetcher, and exits when the worker is done.
// It must be called before anything else in main.
func MaybeRunChild() {
	if os.Getenv(EnvChild) != "1" {
		return
	}
	os.Exit(childMain())
}

func childMain() int {
	// stdout carries the message; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunChild(ctx, os.Stdout); err != nil {
		slog.Error("scrape worker could not report its result", slog.Any("error", err))
		return 1
	}
	return 0
}

// RunChild scrapes the category named by the environment and writes exactly
// one message to w. Scrape failures are reported inside the message; the
// returned error is non-nil only when the message itself could not be written.
func RunChild(ctx context.Context, w io.Writer) error {
	if d, err := time.ParseDuration(os.Getenv(EnvTimeout)); err == nil && d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	msg := scrapeFromEnv(ctx)
	return json.NewEncoder(w).Encode(msg)
}

func scrapeFromEnv(ctx context.Context) message {
	category, err := entity.ParseCategory(os.Getenv(EnvCategory))
	if err != nil {
		return failure(err)
	}

	loader, err := NewLoader(os.Getenv(EnvEngine), os.Getenv(EnvUserAgent))
	if err != nil {
		return failure(err)
	}

	maxItems, _ := strconv.Atoi(os.Getenv(EnvMaxItems))
	s := NewNaverScraper(loader, os.Getenv(EnvBaseURL), maxItems)

	articles, err := s.Fetch(ctx, category)
	if err != nil {
		return failure(err)
	}
	return message{Articles: articles}
}

func failure(err error) message {
	kind := kindOther
	switch {
	case errors.Is(err, entity.ErrInvalidCategory):
		kind = kindInvalidCategory
	case errors.Is(err, context.DeadlineExceeded):
		kind = kindTimeout
	case errors.Is(err, fetch.ErrFetchParse):
		kind = kindParse
	}
	return message{Error: err.Error(), Kind: kind}
}

// decodeMessage turns worker output back into articles or a classified error.
func decodeMessage(out []byte) ([]entity.Article, error) {
	var msg message
	if err := json.Unmarshal(out, &msg); err != nil {
		return nil, fmt.Errorf("%w: undecodable worker output: %v", fetch.ErrFetchParse, err)
	}
	if msg.Error == "" {
		if msg.Articles == nil {
			msg.Articles = []entity.Article{}
		}
		return msg.Articles, nil
	}

	switch msg.Kind {
	case kindInvalidCategory:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidCategory, msg.Error)
	case kindTimeout:
		return nil, fmt.Errorf("%w: %s", fetch.ErrFetchTimeout, msg.Error)
	case kindParse:
		return nil, fmt.Errorf("%w: %s", fetch.ErrFetchParse, msg.Error)
	default:
		return nil, fmt.Errorf("worker: %s", msg.Error)
	}
}
