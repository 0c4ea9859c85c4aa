package middleware

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/pkg/errors"
)

const unknownOrigin = "unknown"

// RequestLogger writes the per-request entry line and, for error responses,
// the completion line.
type RequestLogger struct {
	logger logging.Logger
}

// NewRequestLogger creates a RequestLogger.  A nil logger discards output.
func NewRequestLogger(logger logging.Logger) *RequestLogger {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RequestLogger{logger: logger}
}

// OnEntry logs the arrival of r.
func (l *RequestLogger) OnEntry(r *http.Request) {
	origin := r.Header.Get(HeaderOrigin)
	if origin == "" {
		origin = unknownOrigin
	}
	l.logger.Info("request received",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path),
		logging.String("origin", origin),
		logging.String("request_id", GetRequestID(r.Context())),
	)
}

// OnCompletion logs responses with status >= 400 together with their body.
// Successful responses produce no output.
func (l *RequestLogger) OnCompletion(r *http.Request, c Completion) error {
	if l == nil || l.logger == nil {
		return errors.Internal("request logger is not configured")
	}
	if c.Status < http.StatusBadRequest {
		return nil
	}

	fields := []logging.Field{
		logging.Int("status", c.Status),
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path),
		logging.String("body", SerializeBody(c.ContentType, c.Body)),
		logging.Duration("duration", c.Duration),
		logging.String("request_id", GetRequestID(r.Context())),
	}
	if c.Truncated {
		fields = append(fields, logging.Bool("body_truncated", true))
	}

	if c.Status >= http.StatusInternalServerError {
		l.logger.Error("request failed", fields...)
	} else {
		l.logger.Warn("request failed", fields...)
	}
	return nil
}

// SerializeBody renders a captured body as log text.  Valid JSON is compacted
// to a single line; anything else is used as-is.
func SerializeBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if isJSONContent(contentType) || json.Valid(body) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, body); err == nil {
			return buf.String()
		}
	}
	return string(body)
}

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// RequestLogging returns middleware that installs a ResponseInterceptor, logs
// entry before calling next, and logs completion after next returns.
func RequestLogging(logger logging.Logger, cfg config.RequestLogConfig) func(http.Handler) http.Handler {
	rl := NewRequestLogger(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			interceptor := NewResponseInterceptor(w, cfg.MaxBodyLogSize)
			defer interceptor.Complete(r, rl.OnCompletion)

			rl.OnEntry(r)
			next.ServeHTTP(interceptor, r)
		})
	}
}

//Personal.AI order the ending
