// Package http assembles the JSON API: routing, middleware, health and
// metrics endpoints. Resource handlers live in the subpackages.
package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"newsdiary/internal/handler/http/respond"
)

// HealthResponse is the body of /health and /health/ready.
type HealthResponse struct {
	Status    string                 `json:"status"`    // healthy | unhealthy
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the outcome of one named check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check tests one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// HealthHandler runs every check with a shared five second budget.
// Check failures are reported by name only; details go to the log.
type HealthHandler struct {
	Checks  map[string]Check
	Version string
}

// ServeHTTP answers 200 when every check passes and 503 otherwise.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]CheckStatus, len(names))
	allHealthy := true
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			allHealthy = false
			checks[name] = CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
			continue
		}
		checks[name] = CheckStatus{Status: "healthy"}
	}

	status := "healthy"
	code := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}
