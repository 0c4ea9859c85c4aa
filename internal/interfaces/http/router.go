package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/JobPortal/internal/interfaces/http/handlers"
	"github.com/turtacn/JobPortal/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the dependencies required to construct the HTTP
// handler tree.
type RouterConfig struct {
	Routes        *RouteTable
	HealthHandler *handlers.HealthHandler

	CORS        config.CORSConfig
	RequestLog  config.RequestLogConfig
	MaxBodySize int64

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	HTTPMetrics      *prometheus.HTTPMetrics
	MetricsPath      string
}

// NewRouter builds the request pipeline.  Outermost first:
//
//	RequestID → RealIP → RequestLogging → Recoverer → Metrics → CORS → BodyLimit → mux
//
// The mux serves the probes and /metrics itself and hands everything else,
// including unmatched paths and methods, to the RouteTable.
func NewRouter(cfg RouterConfig) http.Handler {
	routes := cfg.Routes
	if routes == nil {
		routes = NewRouteTable()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(logger, cfg.RequestLog))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(cfg.HTTPMetrics))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.BodyLimit(cfg.MaxBodySize))

	// --- Probes ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = config.DefaultMetricsPath
		}
		r.Method(http.MethodGet, path, cfg.MetricsCollector.Handler())
	}

	// --- API areas and root ---
	r.Handle("/*", routes)
	r.NotFound(routes.ServeHTTP)
	r.MethodNotAllowed(routes.ServeHTTP)

	return r
}

//Personal.AI order the ending
