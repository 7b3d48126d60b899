package adapthttp

import (
	"errors"
	"net/http"

	"shopfront/internal/app"
)

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(s.shop.Cart.Summary()))
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	var err error
	switch r.Method {
	case http.MethodPost:
		var body struct {
			ProductID string `json:"productId"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		err = s.shop.AddToCart(body.ProductID)
	case http.MethodPut:
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		err = s.shop.UpdateCartQuantity(body.ProductID, body.Quantity)
	case http.MethodDelete:
		err = s.shop.RemoveFromCart(r.URL.Query().Get("productId"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if errors.Is(err, app.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(s.shop.Cart.Summary()))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.shop.Cart.Clear()
	writeJSON(w, http.StatusOK, newCartView(s.shop.Cart.Summary()))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	receipt, err := s.shop.Checkout()
	if errors.Is(err, app.ErrCartEmpty) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("order placed", "items", receipt.TotalItems, "total", money(receipt.Total))
	writeJSON(w, http.StatusOK, receiptView{cartView: newCartView(receipt.CartSummary), PlacedAt: receipt.PlacedAt})
}
