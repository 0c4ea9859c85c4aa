package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
)

func TestMetrics_RecordsRequests(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "mw"}, nil)
	require.NoError(t, err)
	m := prometheus.NewHTTPMetrics(collector)

	handler := Metrics(m)(statusHandler(http.StatusNotFound, "", "nope"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	Metrics(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/y", nil))

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	assert.Contains(t, out, `mw_http_requests_total{method="GET",status="404"} 1`)
	assert.Contains(t, out, `mw_http_requests_total{method="POST",status="200"} 1`)
	assert.Contains(t, out, `mw_http_request_duration_seconds_count{method="GET"} 1`)
	assert.Contains(t, out, "mw_http_requests_in_flight 0")
}

func TestMetrics_NilPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Metrics(nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

//Personal.AI order the ending
