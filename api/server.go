/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. CORS:          Cross-origin requests for frontend
  3. RequestLogger: Structured request logging (httplog, ECS schema)
  4. Recoverer:     Panic recovery (500 instead of crash)
  5. Heartbeat:     GET /health for load balancers

  GET /ready additionally pings the database.

ROUTE GROUPS:
  /api/vacations/*  Vacation schedule and entitlement
  /api/calendar/*   Day classification
  /api/packages/*   Package split
  /api/deductions   Statutory deductions
  /api/severance/*  Severance simulation
  /api/present      Currency presentation
  /api/holidays/*   Holiday calendar
  /api/rates        Exchange rates
  /api/policies/*   Company policies
  /api/scenarios/*  Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

// NewLogger creates the JSON logger used for request and application logs.
// Attributes follow the ECS schema.
func NewLogger(w io.Writer, level slog.Level, env string, production bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(!production)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nominix"),
		slog.String("env", env),
	)
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httplog.RequestLogger(h.Logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		// Calculations
		r.Route("/vacations", func(r chi.Router) {
			r.Post("/schedule", h.ScheduleVacation)
			r.Get("/entitlement", h.GetEntitlement)
		})
		r.Get("/calendar/{date}", h.ClassifyDay)
		r.Post("/packages/split", h.SplitPackage)
		r.Post("/deductions", h.ComputeDeductions)
		r.Post("/severance/simulate", h.SimulateSeverance)
		r.Post("/present", h.Present)

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Rate routes
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", h.ListRates)
			r.Post("/", h.CreateRate)
		})

		// Policy routes
		r.Route("/policies", func(r chi.Router) {
			r.Get("/{companyID}", h.GetPolicy)
			r.Put("/{companyID}", h.PutPolicy)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
