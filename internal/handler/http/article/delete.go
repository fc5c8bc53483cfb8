package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/pathutil"
	"newsdiary/internal/handler/http/respond"
	artUC "newsdiary/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes one article and its diary entry.
// @Summary      Delete article
// @Tags         articles
// @Security     BearerAuth
// @Param        id path string true "article ID (path-escaped)"
// @Success      204
// @Failure      404 {string} string "article not found"
// @Failure      500 {string} string "diary cleanup failed"
// @Router       /articles/{id} [delete]
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
		respond.Fail(w, http.StatusNotFound, artUC.ErrArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type DeleteSelectedHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes the listed articles. Unknown IDs are skipped.
// @Summary      Delete selected articles
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body DeleteRequest true "IDs to delete"
// @Success      200 {object} DeleteResponse
// @Failure      400 {string} string "ids are required"
// @Router       /articles/delete [post]
func (h DeleteSelectedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if len(req.IDs) == 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("ids are required"))
		return
	}

	res, err := h.Svc.DeleteSelected(r.Context(), req.IDs)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DeleteResponse{DeletedCount: res.DeletedCount})
}

type DeleteByCategoryHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes every article of a category.
// @Summary      Delete a category
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        category query string true "category"
// @Success      200 {object} DeleteResponse
// @Failure      400 {string} string "invalid category"
// @Router       /articles [delete]
func (h DeleteByCategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("category is required"))
		return
	}

	res, err := h.Svc.DeleteByCategory(r.Context(), entity.Category(raw))
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DeleteResponse{DeletedCount: res.DeletedCount})
}

type DeleteAllHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes every article and the whole diary.
// @Summary      Delete everything
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} DeleteResponse
// @Router       /articles/all [delete]
func (h DeleteAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.DeleteAll(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DeleteResponse{DeletedCount: res.DeletedCount})
}
