package adapthttp

import (
	"errors"
	"net/http"

	"shopfront/internal/app"
	"shopfront/internal/domain"
)

type favoritesQuery struct {
	Gender   domain.Gender   `schema:"gender"`
	Category domain.Category `schema:"category"`
	Text     string          `schema:"q"`
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var q favoritesQuery
	if err := parseQuery(r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	set := 0
	for _, v := range []string{string(q.Gender), string(q.Category), q.Text} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		writeError(w, http.StatusBadRequest, errors.New("use only one of gender, category or q"))
		return
	}

	fav := s.shop.Favorites
	var items []domain.Product
	switch {
	case q.Gender != "":
		if !q.Gender.Valid() {
			writeError(w, http.StatusBadRequest, errors.New("unknown gender"))
			return
		}
		items = fav.FavoritesByGender(q.Gender)
	case q.Category != "":
		if !q.Category.Valid() {
			writeError(w, http.StatusBadRequest, errors.New("unknown category"))
			return
		}
		items = fav.FavoritesByCategory(q.Category)
	case q.Text != "":
		items = fav.Search(q.Text)
	default:
		items = fav.Favorites()
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": newProductViews(items), "total": fav.Count()})
}

func (s *Server) handleFavoriteToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	on, err := s.shop.ToggleFavorite(body.ProductID)
	if errors.Is(err, app.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorite": on, "total": s.shop.Favorites.Count()})
}

func (s *Server) handleFavoritesClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.shop.Favorites.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"items": []productView{}, "total": 0})
}
