package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltshare/rental-backend/internal/api/handlers"
	"github.com/voltshare/rental-backend/internal/config"
	"github.com/voltshare/rental-backend/internal/middleware"
	"github.com/voltshare/rental-backend/internal/services"
)

func NewRouter(cfg config.Config, authmw *middleware.AuthMiddleware,
	userSvc *services.UserService, rentalSvc *services.RentalService, querySvc *services.QueryService) http.Handler {

	authH := handlers.NewAuthHandler(userSvc)
	rentalH := handlers.NewRentalHandler(rentalSvc, querySvc, userSvc)
	stationH := handlers.NewStationHandler(querySvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// read-only catalog, no auth needed
		r.Get("/stations", stationH.List)
		r.Get("/stations/{id}/batteries", stationH.Batteries)

		r.Group(func(r chi.Router) {
			r.Use(authmw.Auth)
			r.Get("/me", rentalH.Me)
			r.Get("/history", rentalH.History)
			r.Post("/rentals", rentalH.Rent)
			r.Post("/rentals/{id}/return", rentalH.Return)
			r.Post("/charge", rentalH.Charge)
		})
	})

	return r
}
