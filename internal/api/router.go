package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/betledger/betledger/internal/services/accounts"
	"github.com/betledger/betledger/internal/services/ledger"
	"github.com/betledger/betledger/internal/services/matchbook"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(acc *accounts.Service, mb *matchbook.Service, led *ledger.Service, jwtSecret string) http.Handler {
	h := NewHandler(acc, mb, led)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/register", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
		r.Get("/matches", h.ListMatchesHandler)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(jwtSecret))

			r.Get("/me", h.ProfileHandler)
			r.Post("/deposits/request", h.RequestDepositHandler)
			r.Post("/bets/place", h.PlaceBetHandler)
			r.Get("/bets/my", h.MyBetsHandler)

			// Admin-only
			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(acc))

				r.Post("/matches", h.CreateMatchHandler)
				r.Post("/deposits/approve", h.ApproveDepositHandler)
				r.Post("/bets/payout", h.SettleBetHandler)
				r.Get("/admin/deposits", h.PendingDepositsHandler)
				r.Get("/admin/users", h.ListUsersHandler)
			})
		})
	})

	return r
}
