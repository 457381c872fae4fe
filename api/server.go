/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the frontend
  2. RequestLogger: Structured request logging (httplog over slog)
  3. CleanPath:     Normalize double slashes
  4. Recoverer:     Panic recovery (500 instead of crash)
  5. Heartbeat:     Liveness probe on /ping

ROUTE GROUPS:
  /api/payroll/*    Calculation, cache retrieval, ledger sync
  /api/employees/*  Roster lookups

SECURITY NOTE:
  No authentication middleware. This service runs on a trusted
  internal network for a single practice.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httplog.RequestLogger(h.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.CalculatePayroll)
			r.Get("/periods", h.ListPeriods)
			r.Get("/default-period", h.DefaultPeriod)
			r.Get("/{id}", h.GetPayroll)
			r.Post("/{id}/sync", h.SyncPayroll)
			r.Get("/{id}/check-sync", h.CheckSync)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/clients", h.ListClients)
		})
	})

	return r
}
