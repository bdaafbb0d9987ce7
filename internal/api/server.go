/*
server.go - HTTP router and middleware configuration

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a browser front end

ROUTE GROUPS:
  /api/employees/*   Employee registry, payroll runs, year-to-date, projections
  /api/calculate     Stateless settlement
  /api/rules/*       Jurisdiction rules by year

SECURITY NOTE:
  No authentication middleware. Run it on a trusted network only.
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Post("/{id}/payroll", h.RunPayroll)
			r.Get("/{id}/ytd/{year}", h.GetYtd)
			r.Post("/{id}/projection", h.ProjectYear)
			r.Post("/{id}/compare", h.ComparePolicies)
		})
		r.Post("/calculate", h.Calculate)
		r.Get("/rules/{year}", h.GetRules)
	})

	return r
}
