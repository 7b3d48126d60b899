package adapthttp

import (
	"errors"
	"net/http"

	"shopfront/internal/catalog"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var q catalog.Query
	if err := parseQuery(r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if q.Gender != "" && !q.Gender.Valid() {
		writeError(w, http.StatusBadRequest, errors.New("unknown gender"))
		return
	}
	if q.Category != "" && !q.Category.Valid() {
		writeError(w, http.StatusBadRequest, errors.New("unknown category"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": newProductViews(s.shop.Catalog.Filter(q))})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.shop.Product(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	view := newProductView(p)
	writeJSON(w, http.StatusOK, map[string]any{
		"product":    view,
		"isFavorite": s.shop.Favorites.IsFavorite(p),
		"inCart":     s.shop.Cart.Quantity(p),
	})
}
