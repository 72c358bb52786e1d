// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sportsbook/internal/api/handler"
	"sportsbook/internal/service"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	authSvc service.AuthService,
	authHandler *handler.AuthHandler,
	bettingHandler *handler.BettingHandler,
	adminHandler *handler.AdminHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Authenticated user routes
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(authSvc, logger))
			r.Get("/me", bettingHandler.Me)
			r.Get("/matches", bettingHandler.Matches)
			r.Get("/bets", bettingHandler.ListBets)
			r.Post("/bets", bettingHandler.PlaceBet)
		})

		// Admin settlement routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAuth(authSvc, logger))
			r.Use(RequireAdmin(logger))
			r.Get("/bets/open", adminHandler.ListOpenBets)
			r.Post("/bets/{betID}/settle", adminHandler.SettleBet)
		})
	})

	return r
}
