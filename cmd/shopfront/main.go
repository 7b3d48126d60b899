package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "shopfront/internal/adapter/http"
	"shopfront/internal/adapter/memory"
	"shopfront/internal/app"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	taxRate, _ := cfg.Tax()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	session := app.NewSessionStore(memory.NewSeeded(),
		app.WithDelays(cfg.AuthDelay, cfg.ProfileDelay),
		app.WithLogger(logger.With("component", "session")),
		app.WithInvalidatePendingOnSignOut(cfg.InvalidatePendingOnSignOut),
	)
	shop := app.NewShop(catalog.Default(), session, app.NewCartStore(taxRate), app.NewFavoritesStore())

	stopTrace := shop.Trace(logger.With("component", "state"))
	defer stopTrace()

	h := adapthttp.New(shop, logger).Handler()
	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
