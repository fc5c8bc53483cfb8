// Package article serves the article endpoints: views, favorites and deletes.
package article

import (
	"net/http"

	artUC "newsdiary/internal/usecase/article"
)

// Register registers all article routes with the given mux.
// Authorization is applied by the router around the whole mux.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("GET /articles/dates", DatesHandler{svc})
	mux.Handle("GET /articles/favorites", FavoritesHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})
	mux.Handle("POST /articles/{id}/favorite", FavoriteHandler{svc})
	mux.Handle("POST /articles/delete", DeleteSelectedHandler{svc})

	mux.Handle("DELETE /articles", DeleteByCategoryHandler{svc})
	mux.Handle("DELETE /articles/all", DeleteAllHandler{svc})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})
}
