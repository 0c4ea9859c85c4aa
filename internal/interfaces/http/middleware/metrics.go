package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
)

// Metrics returns middleware recording request count, latency and in-flight
// requests on m.  A nil m disables recording.
func Metrics(m *prometheus.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inFlight := m.InFlight.WithLabelValues()
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

//Personal.AI order the ending
