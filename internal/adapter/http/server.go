// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"shopfront/internal/app"
)

// Server is the driving HTTP adapter that routes requests to the shop's
// state stores. It serves the single process-wide session.
type Server struct {
	shop        *app.Shop
	log         *slog.Logger
	disableAuth bool
}

// New creates a Server wired to the given shop.
func New(shop *app.Shop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{shop: shop, log: logger}
}

// WithoutAuth lets cart and favorites routes through without a signed-in
// session.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/products", s.handleProducts)
	api.HandleFunc("/products/{id}", s.handleProduct)

	api.HandleFunc("/session", s.handleSession)
	api.HandleFunc("/session/signin", s.handleSignIn)
	api.HandleFunc("/session/signup", s.handleSignUp)
	api.HandleFunc("/session/signout", s.handleSignOut)
	api.HandleFunc("/session/profile", s.handleProfile)

	api.Handle("/cart", s.authMiddleware(http.HandlerFunc(s.handleCart)))
	api.Handle("/cart/items", s.authMiddleware(http.HandlerFunc(s.handleCartItems)))
	api.Handle("/cart/clear", s.authMiddleware(http.HandlerFunc(s.handleCartClear)))
	api.Handle("/cart/checkout", s.authMiddleware(http.HandlerFunc(s.handleCheckout)))

	api.Handle("/favorites", s.authMiddleware(http.HandlerFunc(s.handleFavorites)))
	api.Handle("/favorites/toggle", s.authMiddleware(http.HandlerFunc(s.handleFavoriteToggle)))
	api.Handle("/favorites/clear", s.authMiddleware(http.HandlerFunc(s.handleFavoritesClear)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.recoverMiddleware(s.loggingMiddleware(withNoCache(root)))
}
