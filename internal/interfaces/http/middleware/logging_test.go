package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
)

func newObservedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewLoggerFromCore(core), logs
}

func statusHandler(status int, contentType, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestRequestLogging_EntryLine(t *testing.T) {
	logger, logs := newObservedLogger()
	handler := RequestID(RequestLogging(logger, config.RequestLogConfig{})(okHandler()))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/job/42", nil)
	r.Header.Set("Origin", "https://app.example.com")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	entries := logs.FilterMessage("request received").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "GET", ctx["method"])
	assert.Equal(t, "/api/v1/job/42", ctx["path"])
	assert.Equal(t, "https://app.example.com", ctx["origin"])
	assert.NotEmpty(t, ctx["request_id"])
}

func TestRequestLogging_UnknownOrigin(t *testing.T) {
	logger, logs := newObservedLogger()
	handler := RequestLogging(logger, config.RequestLogConfig{})(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.FilterMessage("request received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown", entries[0].ContextMap()["origin"])
}

func TestRequestLogging_EntryPrecedesHandler(t *testing.T) {
	logger, logs := newObservedLogger()
	var seenAtHandler int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAtHandler = logs.FilterMessage("request received").Len()
		w.WriteHeader(http.StatusTeapot)
	})

	RequestLogging(logger, config.RequestLogConfig{})(next).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, 1, seenAtHandler)
	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, "request received", all[0].Message)
	assert.Equal(t, "request failed", all[1].Message)
}

func TestRequestLogging_CompletionOnlyForErrors(t *testing.T) {
	cases := []struct {
		status    int
		wantLines int
		wantLevel zapcore.Level
	}{
		{http.StatusOK, 0, 0},
		{http.StatusCreated, 0, 0},
		{http.StatusNoContent, 0, 0},
		{http.StatusFound, 0, 0},
		{http.StatusBadRequest, 1, zapcore.WarnLevel},
		{http.StatusNotFound, 1, zapcore.WarnLevel},
		{http.StatusInternalServerError, 1, zapcore.ErrorLevel},
		{http.StatusServiceUnavailable, 1, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			logger, logs := newObservedLogger()
			handler := RequestLogging(logger, config.RequestLogConfig{})(
				statusHandler(tc.status, "application/json", `{"message": "m", "success": false}`))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/company/7", nil))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, 1, logs.FilterMessage("request received").Len())

			failed := logs.FilterMessage("request failed").All()
			require.Len(t, failed, tc.wantLines)
			if tc.wantLines == 0 {
				return
			}
			ctx := failed[0].ContextMap()
			assert.Equal(t, tc.wantLevel, failed[0].Level)
			assert.Equal(t, int64(tc.status), ctx["status"])
			assert.Equal(t, "PUT", ctx["method"])
			assert.Equal(t, "/api/v1/company/7", ctx["path"])
			assert.Equal(t, `{"message":"m","success":false}`, ctx["body"])
		})
	}
}

func TestRequestLogging_TextBodyUsedAsIs(t *testing.T) {
	logger, logs := newObservedLogger()
	handler := RequestLogging(logger, config.RequestLogConfig{})(
		statusHandler(http.StatusForbidden, "text/plain", "no access"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/v1/bookmark/1", nil))

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "no access", failed[0].ContextMap()["body"])
}

func TestRequestLogging_TruncatedBodyFlagged(t *testing.T) {
	logger, logs := newObservedLogger()
	handler := RequestLogging(logger, config.RequestLogConfig{MaxBodyLogSize: 4})(
		statusHandler(http.StatusBadGateway, "text/plain", "upstream exploded"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "upstream exploded", rec.Body.String())
	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	ctx := failed[0].ContextMap()
	assert.Equal(t, "upst", ctx["body"])
	assert.Equal(t, true, ctx["body_truncated"])
}

func TestRequestLogging_EveryRequestGetsOneEntryLine(t *testing.T) {
	logger, logs := newObservedLogger()
	handler := RequestLogging(logger, config.RequestLogConfig{})(CORS(permissiveConfig())(okHandler()))

	methods := []string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodDelete}
	for _, m := range methods {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(m, "/api/v1/user", nil))
	}

	entries := logs.FilterMessage("request received").All()
	require.Len(t, entries, len(methods))
	for i, m := range methods {
		assert.Equal(t, m, entries[i].ContextMap()["method"])
	}
}

func TestRequestLogger_ZeroValueReportsError(t *testing.T) {
	var rl RequestLogger
	err := rl.OnCompletion(httptest.NewRequest(http.MethodGet, "/", nil), Completion{Status: 500})
	assert.Error(t, err)
}

func TestRequestLogger_OnCompletionDuration(t *testing.T) {
	logger, logs := newObservedLogger()
	rl := NewRequestLogger(logger)

	err := rl.OnCompletion(httptest.NewRequest(http.MethodGet, "/slow", nil), Completion{
		Status:   http.StatusGatewayTimeout,
		Duration: 1500 * time.Millisecond,
	})
	require.NoError(t, err)

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, 1500*time.Millisecond, failed[0].ContextMap()["duration"])
	assert.Equal(t, "", failed[0].ContextMap()["body"])
}

func TestSerializeBody(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"empty", "application/json", "", ""},
		{"json compacted", "application/json; charset=utf-8", "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}", `{"a":1,"b":[1,2]}`},
		{"problem json", "application/problem+json", `{ "title": "x" }`, `{"title":"x"}`},
		{"json without content type", "", `{ "ok": false }`, `{"ok":false}`},
		{"invalid json kept", "application/json", "{not json", "{not json"},
		{"plain text", "text/plain", "Cannot GET /nope", "Cannot GET /nope"},
		{"html", "text/html", "<h1>oops</h1>", "<h1>oops</h1>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SerializeBody(tc.contentType, []byte(tc.body)))
		})
	}
}

//Personal.AI order the ending
