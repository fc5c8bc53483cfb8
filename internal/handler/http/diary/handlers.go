// Package diary serves the diary endpoints: one entry per article, addressed
// either through its article or by entry ID.
package diary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/pathutil"
	"newsdiary/internal/handler/http/respond"
	diaryUC "newsdiary/internal/usecase/diary"
)

// ArticleLookup confirms that an article exists before an entry is written.
type ArticleLookup interface {
	Get(ctx context.Context, id string) (entity.Article, error)
}

type GetHandler struct{ Svc *diaryUC.Service }

// ServeHTTP returns the entry of an article.
// @Summary      Get article diary
// @Tags         diary
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "article ID (path-escaped)"
// @Success      200 {object} DTO
// @Failure      404 {string} string "diary entry not found"
// @Router       /articles/{id}/diary [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	e, ok, err := h.Svc.GetByArticle(r.Context(), articleID)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		respond.Fail(w, http.StatusNotFound, diaryUC.ErrEntryNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(e))
}

type PutHandler struct {
	Svc      *diaryUC.Service
	Articles ArticleLookup
}

// ServeHTTP creates or replaces the entry of an article.
// @Summary      Write article diary
// @Tags         diary
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string     true "article ID (path-escaped)"
// @Param        body body PutRequest true "entry text"
// @Success      200 {object} DTO
// @Failure      400 {string} string "invalid request body"
// @Failure      404 {string} string "article not found"
// @Router       /articles/{id}/diary [put]
func (h PutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	var req PutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if h.Articles != nil {
		if _, err := h.Articles.Get(r.Context(), articleID); err != nil {
			respond.Fail(w, http.StatusInternalServerError, err)
			return
		}
	}

	e, err := h.Svc.CreateEntry(r.Context(), articleID, diaryUC.EntryInput{
		Content: req.Content,
		Summary: req.Summary,
		Opinion: req.Opinion,
	})
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(e))
}

type DeleteHandler struct{ Svc *diaryUC.Service }

// ServeHTTP removes the entry of an article.
// @Summary      Delete article diary
// @Tags         diary
// @Security     BearerAuth
// @Param        id path string true "article ID (path-escaped)"
// @Success      204
// @Failure      404 {string} string "diary entry not found"
// @Router       /articles/{id}/diary [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	found, err := h.Svc.DeleteByArticle(r.Context(), articleID)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		respond.Fail(w, http.StatusNotFound, diaryUC.ErrEntryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ListHandler struct{ Svc *diaryUC.Service }

// ServeHTTP lists every entry, oldest first.
// @Summary      List diary
// @Tags         diary
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO
// @Router       /diary [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	respond.JSON(w, http.StatusOK, out)
}

type EntryHandler struct{ Svc *diaryUC.Service }

// ServeHTTP reads, patches or deletes an entry by its own ID.
// @Summary      Diary entry by ID
// @Tags         diary
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string       true  "entry ID"
// @Param        body body PatchRequest false "fields to change (PATCH)"
// @Success      200 {object} DTO
// @Success      204
// @Failure      404 {string} string "diary entry not found"
// @Router       /diary/{id} [get]
// @Router       /diary/{id} [patch]
// @Router       /diary/{id} [delete]
func (h EntryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, err := h.Svc.GetByID(r.Context(), id)
		if err != nil {
			respond.Fail(w, http.StatusInternalServerError, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTO(e))

	case http.MethodPatch:
		var req PatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		e, err := h.Svc.Update(r.Context(), id, diaryUC.UpdateInput{
			Content: req.Content,
			Summary: req.Summary,
			Opinion: req.Opinion,
		})
		if err != nil {
			respond.Fail(w, http.StatusInternalServerError, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTO(e))

	case http.MethodDelete:
		found, err := h.Svc.Delete(r.Context(), id)
		if err != nil {
			respond.Fail(w, http.StatusInternalServerError, err)
			return
		}
		if !found {
			respond.Fail(w, http.StatusNotFound, diaryUC.ErrEntryNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PATCH, DELETE")
		respond.Error(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

// Register registers all diary routes with the given mux. articles may be
// nil, in which case entries are accepted for any article ID.
func Register(mux *http.ServeMux, svc *diaryUC.Service, articles ArticleLookup) {
	mux.Handle("GET /articles/{id}/diary", GetHandler{svc})
	mux.Handle("PUT /articles/{id}/diary", PutHandler{Svc: svc, Articles: articles})
	mux.Handle("DELETE /articles/{id}/diary", DeleteHandler{svc})

	mux.Handle("GET /diary", ListHandler{svc})
	mux.Handle("/diary/{id}", EntryHandler{svc})
}
