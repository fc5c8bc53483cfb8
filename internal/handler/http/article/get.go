package article

import (
	"net/http"

	"newsdiary/internal/handler/http/pathutil"
	"newsdiary/internal/handler/http/respond"
	artUC "newsdiary/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP returns one article.
// @Summary      Get article
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "article ID (path-escaped)"
// @Success      200 {object} DTO
// @Failure      400 {string} string "invalid id"
// @Failure      404 {string} string "article not found"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	a, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}

type FavoriteHandler struct{ Svc *artUC.Service }

// ServeHTTP toggles the favorite flag of an article.
// @Summary      Toggle favorite
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "article ID (path-escaped)"
// @Success      200 {object} FavoriteResponse
// @Failure      404 {string} string "article not found"
// @Router       /articles/{id}/favorite [post]
func (h FavoriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err)
		return
	}

	// ToggleFavorite ignores unknown IDs; the API reports them.
	if _, err := h.Svc.Get(r.Context(), id); err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	fav, err := h.Svc.ToggleFavorite(r.Context(), id)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, FavoriteResponse{ID: id, IsFavorite: fav})
}
