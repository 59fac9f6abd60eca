package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/muniworks/overtime/internal/auth"
	"github.com/muniworks/overtime/internal/dashboard"
	"github.com/muniworks/overtime/internal/employees"
	"github.com/muniworks/overtime/internal/entries"
	"github.com/muniworks/overtime/internal/observability"
	"github.com/muniworks/overtime/internal/org/departments"
	"github.com/muniworks/overtime/internal/org/secretariats"
	"github.com/muniworks/overtime/internal/periods"
	"github.com/muniworks/overtime/internal/reports"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Auth                *auth.Middleware
	SecretariatsHandler *secretariats.Handler
	DepartmentsHandler  *departments.Handler
	EmployeesHandler    *employees.Handler
	PeriodsHandler      *periods.Handler
	EntriesHandler      *entries.Handler
	ReportsHandler      *reports.Handler
	DashboardHandler    *dashboard.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		if params.Auth != nil {
			r.Use(params.Auth.Authenticate)
		}
		r.Route("/org/secretariats", params.SecretariatsHandler.MountRoutes)
		r.Route("/org/departments", params.DepartmentsHandler.MountRoutes)
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
		r.Route("/periods", params.PeriodsHandler.MountRoutes)
		r.Route("/entries", params.EntriesHandler.MountRoutes)
		r.Route("/reports", func(r chi.Router) {
			params.ReportsHandler.MountRoutes(r)
			params.DashboardHandler.MountRoutes(r)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
