package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/database/postgres"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/JobPortal/internal/interfaces/http"
	"github.com/turtacn/JobPortal/internal/interfaces/http/handlers"
	"github.com/turtacn/JobPortal/pkg/errors"
)

// App is the fully composed server for one configuration.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Routes    *httpserver.RouteTable
	DB        *postgres.Connector
	Server    *httpserver.Server
}

// BuildApp wires configuration, metrics, the route table, the database
// connector and the HTTP server.  It performs no I/O.
func BuildApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var collector prometheus.MetricsCollector
	if cfg.Metrics.Enabled {
		c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableGoMetrics:      true,
			EnableProcessMetrics: true,
		}, logger.Named("metrics"))
		if err != nil {
			return nil, err
		}
		collector = c
	}
	httpMetrics := prometheus.NewHTTPMetrics(collector)

	routes, err := httpserver.NewAPIRouteTable(nil, httpserver.WithDispatchMetrics(httpMetrics))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build route table")
	}

	db := postgres.NewConnector(cfg.Database, logger.Named("postgres"),
		postgres.WithMetrics(prometheus.NewDatabaseMetrics(collector)),
	)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Routes:           routes,
		HealthHandler:    handlers.NewHealthHandler(config.Version, db),
		CORS:             cfg.CORS,
		RequestLog:       cfg.RequestLog,
		MaxBodySize:      cfg.Server.MaxBodySize,
		Logger:           logger,
		MetricsCollector: collector,
		HTTPMetrics:      httpMetrics,
		MetricsPath:      cfg.Metrics.Path,
	})

	sc := &httpserver.ServerContext{
		Config: cfg,
		Routes: routes,
		Logger: logger,
		DB:     db,
	}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Collector: collector,
		Routes:    routes,
		DB:        db,
		Server:    httpserver.NewServer(sc, router),
	}, nil
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// within Server.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			_ = a.DB.Close()
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("graceful shutdown failed", logging.Err(err))
		return err
	}
	return <-errCh
}

func newServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting job portal API server",
		logging.String("version", config.Version),
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
		logging.String("cors_mode", cfg.CORS.Mode),
	)

	app, err := BuildApp(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

//Personal.AI order the ending
