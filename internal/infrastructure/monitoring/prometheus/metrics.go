package prometheus

import "time"

// DefaultHTTPDurationBuckets are the request-latency buckets in seconds.
var DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HTTPMetrics groups the request-level metrics recorded by the HTTP layer.
type HTTPMetrics struct {
	RequestsTotal   CounterVec   // labels: method, status
	RequestDuration HistogramVec // labels: method
	InFlight        GaugeVec     // no labels
	DispatchTotal   CounterVec   // labels: prefix ("/" for root, "none" for not found)
}

// NewHTTPMetrics registers the HTTP metrics on c.  A nil collector yields
// no-op metrics.
func NewHTTPMetrics(c MetricsCollector) *HTTPMetrics {
	if c == nil {
		c = NewNopCollector()
	}
	return &HTTPMetrics{
		RequestsTotal: c.RegisterCounter("http_requests_total",
			"Total HTTP requests by method and status code.", "method", "status"),
		RequestDuration: c.RegisterHistogram("http_request_duration_seconds",
			"HTTP request latency in seconds.", DefaultHTTPDurationBuckets, "method"),
		InFlight: c.RegisterGauge("http_requests_in_flight",
			"HTTP requests currently being served."),
		DispatchTotal: c.RegisterCounter("http_dispatch_total",
			"Requests forwarded by the route table, by matched prefix.", "prefix"),
	}
}

// DatabaseMetrics groups metrics recorded by the database connector.
type DatabaseMetrics struct {
	ConnectAttempts CounterVec // labels: result ("success" | "failure")
	ConnectDuration HistogramVec
}

// NewDatabaseMetrics registers the database metrics on c.
func NewDatabaseMetrics(c MetricsCollector) *DatabaseMetrics {
	if c == nil {
		c = NewNopCollector()
	}
	return &DatabaseMetrics{
		ConnectAttempts: c.RegisterCounter("db_connect_attempts_total",
			"Database connect attempts by result.", "result"),
		ConnectDuration: c.RegisterHistogram("db_connect_duration_seconds",
			"Time spent establishing the database connection.", nil),
	}
}

// Timer observes the elapsed time into a histogram.
type Timer struct {
	histogram Histogram
	start     time.Time
}

// NewTimer starts a Timer.
func NewTimer(histogram Histogram) *Timer {
	return &Timer{histogram: histogram, start: time.Now()}
}

// ObserveDuration records the seconds elapsed since NewTimer.
func (t *Timer) ObserveDuration() {
	if t.histogram == nil {
		return
	}
	t.histogram.Observe(time.Since(t.start).Seconds())
}

//Personal.AI order the ending
