// Package postgres provides the database connection utility the HTTP server
// triggers once it is listening.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/JobPortal/pkg/errors"
)

const driverName = "postgres"

// sqlOpen is a variable to allow mocking in tests.
var sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// Option configures a Connector.
type Option func(*Connector)

// WithMetrics records connect attempts on m.
func WithMetrics(m *prometheus.DatabaseMetrics) Option {
	return func(c *Connector) { c.metrics = m }
}

// WithRetryInterval sets the first delay between connect attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Connector) { c.retryInterval = d }
}

// Connector owns the PostgreSQL pool.  The pool is opened lazily by Connect
// and shared by every caller of DB afterwards.
type Connector struct {
	cfg           config.DatabaseConfig
	logger        logging.Logger
	metrics       *prometheus.DatabaseMetrics
	retryInterval time.Duration

	connectMu sync.Mutex
	mu        sync.RWMutex
	db        *sql.DB
	closed    bool
}

// NewConnector creates a Connector.  No I/O happens until Connect.
func NewConnector(cfg config.DatabaseConfig, log logging.Logger, opts ...Option) *Connector {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &Connector{
		cfg:           cfg,
		logger:        log,
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = prometheus.NewDatabaseMetrics(nil)
	}
	return c
}

// NewConnectorWithDB wraps an already-open pool (for testing).
func NewConnectorWithDB(db *sql.DB, log logging.Logger) *Connector {
	c := NewConnector(config.DatabaseConfig{}, log)
	c.db = db
	return c
}

// Connect opens the pool and pings it, retrying with exponential backoff up to
// ConnectRetries extra attempts.  Calling Connect on a connected Connector is a
// no-op.  Readers of DB are not blocked while the pings are retried.
func (c *Connector) Connect(ctx context.Context) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	c.mu.RLock()
	closed, connected := c.closed, c.db != nil
	c.mu.RUnlock()
	if closed {
		return errors.New(errors.ErrCodeDatabaseNotOpen, "database connector is closed")
	}
	if connected {
		return nil
	}

	db, err := sqlOpen(driverName, buildDSN(c.cfg))
	if err != nil {
		c.metrics.ConnectAttempts.WithLabelValues("failure").Inc()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to open database connection")
	}
	c.configurePool(db)

	timer := prometheus.NewTimer(c.metrics.ConnectDuration.WithLabelValues())
	err = c.pingWithRetry(ctx, db)
	timer.ObserveDuration()
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, errors.ErrCodeDatabaseUnavailable, "database connection failed")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = db.Close()
		return errors.New(errors.ErrCodeDatabaseNotOpen, "database connector closed while connecting")
	}
	c.db = db
	c.mu.Unlock()

	c.logger.Info("Connected to PostgreSQL database",
		logging.String("host", c.cfg.Host),
		logging.Int("port", c.cfg.Port),
		logging.String("database", c.cfg.DBName),
	)
	return nil
}

func (c *Connector) pingWithRetry(ctx context.Context, db *sql.DB) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryInterval
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = 0

	retries := c.cfg.ConnectRetries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)

	attempt := 0
	ping := func() error {
		attempt++
		pingCtx := ctx
		if c.cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
			defer cancel()
		}
		if err := db.PingContext(pingCtx); err != nil {
			c.metrics.ConnectAttempts.WithLabelValues("failure").Inc()
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		c.metrics.ConnectAttempts.WithLabelValues("success").Inc()
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("database ping failed, retrying",
			logging.Int("attempt", attempt),
			logging.Duration("wait", wait),
			logging.Err(err),
		)
	}
	return backoff.RetryNotify(ping, policy, notify)
}

func (c *Connector) configurePool(db *sql.DB) {
	maxOpen := c.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = config.DefaultDBMaxOpenConns
	}
	maxIdle := c.cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = config.DefaultDBMaxIdleConns
	}
	lifetime := c.cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = config.DefaultDBConnMaxLife
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)
}

// DB returns the pool, or ErrCodeDatabaseNotOpen before a successful Connect.
func (c *Connector) DB() (*sql.DB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return nil, errors.New(errors.ErrCodeDatabaseNotOpen, "database is not connected")
	}
	return c.db, nil
}

// Name implements the readiness checker contract.
func (c *Connector) Name() string { return "database" }

// Check implements the readiness checker contract.
func (c *Connector) Check(ctx context.Context) error { return c.HealthCheck(ctx) }

// HealthCheck verifies the database connection status.
func (c *Connector) HealthCheck(ctx context.Context) error {
	db, err := c.DB()
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseUnavailable, "database health check failed")
	}

	stats := db.Stats()
	if stats.OpenConnections > 0 {
		usage := float64(stats.InUse) / float64(stats.OpenConnections)
		if usage > 0.8 {
			c.logger.Warn("High database connection pool usage",
				logging.Int("in_use", stats.InUse),
				logging.Int("open", stats.OpenConnections),
				logging.Float64("usage", usage),
			)
		}
	}
	return nil
}

// Stats returns pool statistics; zero before Connect.
func (c *Connector) Stats() sql.DBStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return sql.DBStats{}
	}
	return c.db.Stats()
}

// Close closes the pool.  It is idempotent and safe before Connect.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		c.logger.Error("Failed to close PostgreSQL database connection", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to close database connection")
	}
	c.logger.Info("Closed PostgreSQL database connection")
	return nil
}

// buildDSN returns cfg.URL when set, otherwise a postgres:// URL built from
// the discrete fields.
func buildDSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.DBName,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	} else {
		q.Set("sslmode", config.DefaultDBSSLMode)
	}
	if cfg.ConnectTimeout > 0 {
		secs := int(cfg.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

//Personal.AI order the ending
