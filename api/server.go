/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/districts/*           District reference data and history
  /api/performance/summary   State-wide summary
  /api/compare               Multi-district comparison bundle
  /api/sync/{code}           Manual sync trigger

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Service info
	r.Get("/", h.Root)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/districts", func(r chi.Router) {
			r.Get("/", h.ListDistricts)
			r.Get("/{code}", h.GetDistrict)
			r.Get("/{code}/performance", h.GetDistrictPerformance)
			r.Get("/{code}/latest", h.GetLatestPerformance)
		})

		r.Get("/performance/summary", h.GetPerformanceSummary)
		r.Get("/compare", h.CompareDistricts)
		r.Post("/sync/{code}", h.TriggerSync)
	})

	return r
}
