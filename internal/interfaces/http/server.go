package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/pkg/errors"
)

// Database is the connection utility the server triggers once it is listening.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
}

// ServerContext is the process-wide state built once by the composition root.
type ServerContext struct {
	Config *config.Config
	Routes *RouteTable
	Logger logging.Logger
	DB     Database
}

// Server owns the listener and the http.Server for one ServerContext.
type Server struct {
	sc         *ServerContext
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener

	connectDone chan struct{}
	connectErr  error
}

// NewServer creates a Server serving handler with the timeouts from sc.Config.
func NewServer(sc *ServerContext, handler http.Handler) *Server {
	if sc.Logger == nil {
		sc.Logger = logging.NewNopLogger()
	}
	if sc.Config == nil {
		sc.Config = config.NewDefaultConfig()
	}
	srv := sc.Config.Server
	return &Server{
		sc: sc,
		httpServer: &http.Server{
			Addr:         srv.Addr(),
			Handler:      handler,
			ReadTimeout:  srv.ReadTimeout,
			WriteTimeout: srv.WriteTimeout,
			IdleTimeout:  srv.IdleTimeout,
		},
		connectDone: make(chan struct{}),
	}
}

// Listen binds the listen socket.  It is safe to call more than once.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("listen on %s", s.httpServer.Addr))
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Start binds the socket, triggers the database connect in the background and
// serves until Shutdown.  A failed connect is logged; the server keeps serving.
// Start returns nil once the server has been shut down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	port := s.Port()
	s.sc.Logger.Info(fmt.Sprintf("Server is running on http://localhost:%d", port),
		logging.Int("port", port),
	)

	go s.connect(ctx)

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, errors.ErrCodeInternal, "http server failed")
	}
	return nil
}

func (s *Server) connect(ctx context.Context) {
	defer close(s.connectDone)
	if s.sc.DB == nil {
		return
	}

	start := time.Now()
	err := s.sc.DB.Connect(ctx)
	s.connectErr = err
	if err != nil {
		s.sc.Logger.Error("database connection failed", logging.Err(err))
		return
	}
	s.sc.Logger.Info("database connected", logging.Duration("elapsed", time.Since(start)))
}

// ConnectDone is closed once the post-bind connect attempt has finished.
func (s *Server) ConnectDone() <-chan struct{} { return s.connectDone }

// ConnectErr returns the connect result.  Only valid after ConnectDone.
func (s *Server) ConnectErr() error { return s.connectErr }

// Shutdown stops accepting connections, drains in-flight requests and closes
// the database.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sc.Logger.Info("shutting down HTTP server")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		err = errors.Wrap(err, errors.ErrCodeInternal, "server shutdown failed")
	}

	s.mu.Lock()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Unlock()

	if s.sc.DB != nil {
		if cerr := s.sc.DB.Close(); cerr != nil {
			s.sc.Logger.Warn("database close failed", logging.Err(cerr))
		}
	}

	s.sc.Logger.Info("HTTP server stopped")
	return err
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

//Personal.AI order the ending
