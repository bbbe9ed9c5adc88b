package app

import (
	"net/http"
	"time"

	authhandlers "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/jwt"
	birdtypehandlers "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/handlers"
	dashboardhandlers "github.com/apvc-club/stake-reservations/app/modules/dashboard/infrastructure/handlers"
	stakehandlers "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/handlers"
	tournamenthandlers "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type handlers struct {
	auth       *authhandlers.AuthHandlers
	tournament *tournamenthandlers.TournamentHandlers
	birdType   *birdtypehandlers.BirdTypeHandlers
	stake      *stakehandlers.StakeHandlers
	dashboard  *dashboardhandlers.DashboardHandlers
}

// newHTTPRouter assembles the chi mux: public reservation routes, the admin
// surface behind JWT, and the operational endpoints.
func (a *App) newHTTPRouter(h handlers, jwtProvider *authjwt.Provider) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(correlationMiddleware)
	r.Use(a.requestMetricsMiddleware)
	r.Use(authhandlers.CORSMiddleware(a.Cfg.HTTP.AllowedOrigins))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.Obs.Registry, promhttp.HandlerOpts{}))

	// Brute-force guard on login, lighter limit on reservation attempts.
	loginLimiter := authhandlers.NewIPRateLimiter(rate.Every(time.Second), 5)
	reserveLimiter := authhandlers.NewIPRateLimiter(rate.Every(time.Second/10), 20)

	r.Route("/api", func(r chi.Router) {
		r.With(authhandlers.RateLimitMiddleware(loginLimiter)).Post("/auth/login", h.auth.Login)

		r.Get("/tournaments/active", h.tournament.GetActive)
		r.Get("/tournaments/{tournamentID}/bird-types", h.birdType.ListByTournament)
		r.Get("/bird-types/{birdTypeID}", h.birdType.Get)
		r.Get("/bird-types/{birdTypeID}/stakes", h.stake.ListByBirdType)
		r.With(authhandlers.RateLimitMiddleware(reserveLimiter)).
			Post("/stakes/{stakeID}/reserve", h.stake.Reserve)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authhandlers.AdminOnly(jwtProvider))

			r.Get("/dashboard", h.dashboard.Stats)
			r.Get("/dashboard/chart", h.dashboard.StatusChart)
			r.Get("/export", h.stake.Export)

			r.Get("/tournaments", h.tournament.List)
			r.Post("/tournaments", h.tournament.Create)
			r.Post("/tournaments/{tournamentID}/activate", h.tournament.Activate)
			r.Post("/tournaments/{tournamentID}/deactivate", h.tournament.Deactivate)

			r.Post("/bird-types", h.birdType.Create)

			r.Post("/stakes/{stakeID}/confirm", h.stake.ConfirmPayment)
			r.Post("/stakes/{stakeID}/cancel", h.stake.CancelReservation)
		})
	})

	return r
}
