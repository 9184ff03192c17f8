/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging (zap)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for a browser frontend

ROUTE GROUPS:
  /api/workplaces/*   Workplace policies
  /api/shifts/*       Shift log
  /api/patterns       Shift presets
  /api/check          Consistency scan
  /api/summary        Totals and income limit
  /api/monitor        Last background check
  /api/scenarios/*    Demo data
  /api/reset          Database reset (dev only)
  /api/health         Liveness

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured. monitor may
// be nil.
func NewRouter(h *Handler, monitor *LimitMonitor) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/workplaces", func(r chi.Router) {
			r.Get("/", h.ListWorkplaces)
			r.Post("/", h.CreateWorkplace)
			r.Get("/{name}", h.GetWorkplace)
			r.Put("/{name}", h.UpdateWorkplace)
			r.Delete("/{name}", h.DeleteWorkplace)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Post("/preview", h.PreviewShift)
			r.Post("/bulk", h.BulkEdit)
			r.Post("/bulk/delete", h.BulkDelete)
			r.Get("/{id}", h.GetShift)
			r.Delete("/{id}", h.DeleteShift)
			r.Post("/{id}/duplicate", h.DuplicateShift)
		})

		r.Get("/patterns", h.ListPatterns)
		r.Get("/check", h.Check)
		r.Get("/summary", h.Summary)
		if monitor != nil {
			r.Get("/monitor", monitor.Status)
		}

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})

		r.Post("/reset", h.ResetDatabase)
		r.Get("/health", h.Health)
	})

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
