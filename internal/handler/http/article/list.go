package article

import (
	"net/http"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/respond"
	artUC "newsdiary/internal/usecase/article"
)

type ListHandler struct{ Svc *artUC.Service }

// ServeHTTP lists articles, optionally filtered.
// @Summary      List articles
// @Description  Returns stored articles. category and date filters combine.
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        category query string false "category, e.g. 정치"
// @Param        date     query string false "YYYY-MM-DD or a prefix of it"
// @Success      200 {array}  DTO
// @Failure      400 {string} string "invalid category"
// @Failure      401 {string} string "unauthorized"
// @Failure      500 {string} string "internal server error"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		articles []entity.Article
		err      error
	)
	if raw := q.Get("category"); raw != "" {
		articles, err = h.Svc.ListByCategory(r.Context(), entity.Category(raw))
	} else {
		articles, err = h.Svc.List(r.Context())
	}
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}

	if date := q.Get("date"); date != "" {
		articles = artUC.FilterByDate(articles, date)
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

type DatesHandler struct{ Svc *artUC.Service }

// ServeHTTP lists the dates that have collected news, newest first.
// @Summary      Dates with news
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} string
// @Router       /articles/dates [get]
func (h DatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dates, err := h.Svc.DatesWithNews(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, dates)
}

type FavoritesHandler struct{ Svc *artUC.Service }

// ServeHTTP lists favorited articles.
// @Summary      Favorite articles
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO
// @Router       /articles/favorites [get]
func (h FavoritesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Favorites(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}
