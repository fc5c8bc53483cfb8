// Package collect serves POST /collect, an on-demand collection run.
package collect

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/respond"
	"newsdiary/internal/usecase/fetch"
)

// Collector runs one collection over the given categories.
type Collector interface {
	Collect(ctx context.Context, categories []entity.Category) (map[entity.Category][]entity.Article, *fetch.CollectResult, error)
}

// Request selects categories. An empty body or list collects all six.
type Request struct {
	Categories []string `json:"categories"`
}

// Response summarizes the run.
type Response = fetch.Summary

// Handler triggers a collection. Only one run is served at a time; a
// request arriving during a run gets 409.
type Handler struct {
	Svc     Collector
	Timeout time.Duration

	mu sync.Mutex
}

// ServeHTTP runs a collection and reports its outcome.
// @Summary      Collect news
// @Description  Scrapes the requested categories and merges new articles into the collection.
// @Tags         collect
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body Request false "categories to collect"
// @Success      200 {object} Response
// @Failure      400 {string} string "invalid category"
// @Failure      409 {string} string "collection already running"
// @Failure      500 {string} string "internal server error"
// @Router       /collect [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	categories, err := entity.ParseCategories(req.Categories)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	if !h.mu.TryLock() {
		respond.Error(w, http.StatusConflict, errors.New("collection already running"))
		return
	}
	defer h.mu.Unlock()

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	results, stats, err := h.Svc.Collect(ctx, categories)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, stats.Summarize(results))
}

// Register registers the collect route with the given mux.
func Register(mux *http.ServeMux, svc Collector, timeout time.Duration) {
	mux.Handle("POST /collect", &Handler{Svc: svc, Timeout: timeout})
}
