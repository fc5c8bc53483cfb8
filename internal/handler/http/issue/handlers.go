// Package issue serves the calendar issue endpoints.
package issue

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/pathutil"
	"newsdiary/internal/handler/http/respond"
	"newsdiary/internal/usecase/calendar"
)

// DTO is the wire form of a calendar issue.
type DTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toDTO(i entity.CalendarIssue) DTO {
	return DTO{
		ID:        i.ID,
		Date:      i.Date,
		Title:     i.Title,
		Content:   i.Content,
		CreatedAt: i.CreatedAt.String(),
		UpdatedAt: i.UpdatedAt.String(),
	}
}

func toDTOs(issues []entity.CalendarIssue) []DTO {
	out := make([]DTO, 0, len(issues))
	for _, i := range issues {
		out = append(out, toDTO(i))
	}
	return out
}

// CreateRequest is the body of POST /issues.
type CreateRequest struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateRequest changes only the fields present in the body.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ListHandler struct{ Svc *calendar.Service }

// ServeHTTP lists issues, all of them or those of one date.
// @Summary      List issues
// @Tags         issues
// @Security     BearerAuth
// @Produce      json
// @Param        date query string false "YYYY-MM-DD"
// @Success      200 {array} DTO
// @Failure      400 {string} string "invalid date"
// @Router       /issues [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		issues []entity.CalendarIssue
		err    error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		issues, err = h.Svc.ByDate(r.Context(), date)
	} else {
		issues, err = h.Svc.All(r.Context())
	}
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(issues))
}

type DatesHandler struct{ Svc *calendar.Service }

// ServeHTTP lists the dates that carry issues, newest first.
// @Summary      Dates with issues
// @Tags         issues
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} string
// @Router       /issues/dates [get]
func (h DatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dates, err := h.Svc.DatesWithIssues(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, dates)
}

type CreateHandler struct{ Svc *calendar.Service }

// ServeHTTP creates an issue.
// @Summary      Create issue
// @Tags         issues
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateRequest true "issue"
// @Success      201 {object} DTO
// @Failure      400 {string} string "validation failed"
// @Router       /issues [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), req.Date, req.Title, req.Content)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}

type GetHandler struct{ Svc *calendar.Service }

// ServeHTTP returns one issue.
// @Summary      Get issue
// @Tags         issues
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "issue ID"
// @Success      200 {object} DTO
// @Failure      404 {string} string "calendar issue not found"
// @Router       /issues/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}
	got, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(got))
}

type UpdateHandler struct{ Svc *calendar.Service }

// ServeHTTP applies a partial update. The date cannot change.
// @Summary      Update issue
// @Tags         issues
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string        true "issue ID"
// @Param        body body UpdateRequest true "fields to change"
// @Success      200 {object} DTO
// @Failure      400 {string} string "validation failed"
// @Failure      404 {string} string "calendar issue not found"
// @Router       /issues/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, calendar.UpdateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}

type DeleteHandler struct{ Svc *calendar.Service }

// ServeHTTP deletes an issue.
// @Summary      Delete issue
// @Tags         issues
// @Security     BearerAuth
// @Param        id path string true "issue ID"
// @Success      204
// @Failure      404 {string} string "calendar issue not found"
// @Router       /issues/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}
	found, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		respond.Fail(w, http.StatusNotFound, calendar.ErrIssueNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers all issue routes with the given mux.
func Register(mux *http.ServeMux, svc *calendar.Service) {
	mux.Handle("GET /issues", ListHandler{svc})
	mux.Handle("GET /issues/dates", DatesHandler{svc})
	mux.Handle("POST /issues", CreateHandler{svc})
	mux.Handle("GET /issues/{id}", GetHandler{svc})
	mux.Handle("PUT /issues/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /issues/{id}", DeleteHandler{svc})
}
