package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsdiary/internal/domain/entity"
)

// CircuitReporter exposes the categories whose scrape circuit is open.
// scraper.ProcessFetcher implements it.
type CircuitReporter interface {
	OpenCircuits() []entity.Category
}

// HealthServer serves the worker's health checks and metrics:
//   - /health: liveness, always 200
//   - /health/ready: 200 once SetReady(true) was called, 503 before
//   - /health/scraper: 503 while any category circuit is open
//   - /metrics: Prometheus exposition
//
// Example usage:
//
//	healthServer := NewHealthServer(":9091", logger, fetcher)
//	go func() {
//	    if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
//	        logger.Error("health server failed", slog.Any("error", err))
//	    }
//	}()
//	healthServer.SetReady(true)
type HealthServer struct {
	addr     string
	logger   *slog.Logger
	isReady  *atomic.Bool
	circuits CircuitReporter
	server   *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

type scraperHealthResponse struct {
	Healthy      bool     `json:"healthy"`
	OpenCircuits []string `json:"open_circuits"`
}

// NewHealthServer creates a health server that is not ready yet.
// circuits may be nil, in which case /health/scraper always reports healthy.
func NewHealthServer(addr string, logger *slog.Logger, circuits CircuitReporter) *HealthServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthServer{
		addr:     addr,
		logger:   logger,
		isReady:  &atomic.Bool{},
		circuits: circuits,
	}
}

// Handler returns the health mux.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.HandleFunc("GET /health/scraper", h.handleScraper)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is canceled, then shuts down within 5 seconds.
// It returns http.ErrServerClosed after a graceful shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady changes the /health/ready answer.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if h.isReady.Load() {
		h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
		return
	}
	h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
}

// handleScraper reports unhealthy while any category is short-circuited.
// Collection still runs for the other categories.
func (h *HealthServer) handleScraper(w http.ResponseWriter, _ *http.Request) {
	resp := scraperHealthResponse{Healthy: true, OpenCircuits: []string{}}
	if h.circuits != nil {
		for _, c := range h.circuits.OpenCircuits() {
			resp.OpenCircuits = append(resp.OpenCircuits, c.String())
		}
	}
	status := http.StatusOK
	if len(resp.OpenCircuits) > 0 {
		resp.Healthy = false
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

func (h *HealthServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
