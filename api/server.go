/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind a proxy
  3. Logger:     Request logging
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the site dashboard
  6. JSON:       Default response content type

ROUTE GROUPS:
  /api/masterdata/*     Master-data snapshot import/export
  /api/workers/*        Workers, their days and recomputation
  /api/holidays/*       Holiday calendar
  /api/attendance/*     Recording, preview, listing
  /api/projects/*       Project cost report
  /api/payroll/*        Monthly payroll and approval workflow
  /api/scenarios/*      Demo scenarios
  /                     Plain index page

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Master data
		r.Route("/masterdata", func(r chi.Router) {
			r.Get("/", h.GetMasterData)
			r.Post("/import", h.ImportMasterData)
		})

		// Worker routes
		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Get("/{id}", h.GetWorker)
			r.Get("/{id}/attendance/{date}", h.GetWorkerDay)
			r.Post("/{id}/recompute", h.RecomputeWorker)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Attendance routes
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.ListAttendance)
			r.Post("/", h.RecordAttendance)
			r.Post("/preview", h.PreviewAttendance)
			r.Post("/recompute", h.RecomputeAll)
		})

		r.Get("/projects/costs", h.ProjectCosts)

		// Payroll routes
		r.Route("/payroll/{month}", func(r chi.Router) {
			r.Get("/", h.ListPayroll)
			r.Post("/open", h.OpenPayroll)
			r.Get("/export.xlsx", h.ExportPayroll)
			r.Get("/{workerID}", h.GetPayroll)
			r.Post("/{workerID}/approve", h.ApprovePayroll)
			r.Post("/{workerID}/reject", h.RejectPayroll)
			r.Post("/{workerID}/pay", h.PayPayroll)
			r.Get("/{workerID}/payslip.pdf", h.Payslip)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>SIPILPRO</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>SIPILPRO Attendance &amp; Wage API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/workers">/api/workers</a> - List workers</li>
<li><a href="/api/holidays">/api/holidays</a> - List holidays</li>
<li><a href="/api/attendance">/api/attendance</a> - Attendance this month</li>
<li><a href="/api/projects/costs">/api/projects/costs</a> - Project costs this month</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
