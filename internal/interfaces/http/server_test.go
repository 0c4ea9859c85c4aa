package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
)

// dialingDB checks, from inside Connect, that the server is already accepting
// connections on its port.
type dialingDB struct {
	server     *Server
	connectErr error
	dialErr    error
	connects   atomic.Int32
	closed     atomic.Bool
}

func (d *dialingDB) Connect(ctx context.Context) error {
	d.connects.Add(1)
	conn, err := net.DialTimeout("tcp", d.server.Addr().String(), time.Second)
	if err != nil {
		d.dialErr = err
	} else {
		conn.Close()
	}
	return d.connectErr
}

func (d *dialingDB) Close() error {
	d.closed.Store(true)
	return nil
}

func newTestServer(t *testing.T, db *dialingDB) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	cfg := config.NewDefaultConfig()
	cfg.Server.Port = 0
	sc := &ServerContext{
		Config: cfg,
		Routes: NewRouteTable(),
		Logger: logging.NewLoggerFromCore(core),
	}
	if db != nil {
		sc.DB = db
	}
	srv := NewServer(sc, NewRouter(RouterConfig{Routes: sc.Routes, Logger: sc.Logger}))
	if db != nil {
		db.server = srv
	}
	return srv, logs
}

func startServer(t *testing.T, srv *Server) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case <-srv.ConnectDone():
	case <-time.After(5 * time.Second):
		t.Fatal("connect was never triggered")
	}
	return cancel, errCh
}

func stopServer(t *testing.T, srv *Server, cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()
	cancel()
	ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-errCh)
}

func TestNewServer_UsesConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	srv := NewServer(&ServerContext{Config: cfg}, http.NotFoundHandler())

	assert.Equal(t, ":8000", srv.httpServer.Addr)
	assert.Equal(t, cfg.Server.ReadTimeout, srv.httpServer.ReadTimeout)
	assert.Nil(t, srv.Addr())
	assert.Zero(t, srv.Port())
	assert.NotNil(t, srv.Handler())
}

func TestServer_ConnectsAfterBind(t *testing.T) {
	db := &dialingDB{}
	srv, logs := newTestServer(t, db)

	cancel, errCh := startServer(t, srv)
	defer stopServer(t, srv, cancel, errCh)

	assert.EqualValues(t, 1, db.connects.Load())
	assert.NoError(t, db.dialErr, "listener must be bound before Connect runs")
	assert.NoError(t, srv.ConnectErr())

	running := logs.FilterMessage(fmt.Sprintf("Server is running on http://localhost:%d", srv.Port()))
	assert.Equal(t, 1, running.Len())
	assert.Equal(t, 1, logs.FilterMessage("database connected").Len())
}

func TestServer_ConnectFailureKeepsServing(t *testing.T) {
	db := &dialingDB{connectErr: fmt.Errorf("connection refused")}
	srv, logs := newTestServer(t, db)

	cancel, errCh := startServer(t, srv)
	defer stopServer(t, srv, cancel, errCh)

	assert.Error(t, srv.ConnectErr())
	assert.Equal(t, 1, logs.FilterMessage("database connection failed").Len())

	resp, err := http.Get(fmt.Sprintf("http://%s/", srv.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Welcome to the server","success":true}`, string(body))
}

func TestServer_ShutdownClosesDatabase(t *testing.T) {
	db := &dialingDB{}
	srv, _ := newTestServer(t, db)

	cancel, errCh := startServer(t, srv)
	stopServer(t, srv, cancel, errCh)

	assert.True(t, db.closed.Load())
}

func TestServer_WithoutDatabase(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	cancel, errCh := startServer(t, srv)
	defer stopServer(t, srv, cancel, errCh)

	assert.NoError(t, srv.ConnectErr())
	assert.NotZero(t, srv.Port())
}

func TestServer_ListenFailure(t *testing.T) {
	occupied, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg := config.NewDefaultConfig()
	cfg.Server.Port = occupied.Addr().(*net.TCPAddr).Port
	srv := NewServer(&ServerContext{Config: cfg}, http.NotFoundHandler())

	err = srv.Start(context.Background())
	assert.Error(t, err)
}

func TestServer_ListenIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	require.NoError(t, srv.Listen())
	addr := srv.Addr().String()
	require.NoError(t, srv.Listen())
	assert.Equal(t, addr, srv.Addr().String())

	require.NoError(t, srv.Shutdown(context.Background()))
}

//Personal.AI order the ending
