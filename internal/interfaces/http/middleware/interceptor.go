package middleware

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultMaxCapturedBody is used when no positive capture limit is given.
const DefaultMaxCapturedBody = 4096

// Completion describes a finished response as seen by the interceptor.
type Completion struct {
	Status      int
	ContentType string
	Body        []byte // captured only for status >= 400
	Truncated   bool
	Bytes       int64
	Duration    time.Duration
}

// CompletionHook is invoked once a response has been sent.  Its error, and any
// panic it raises, never reaches the client.
type CompletionHook func(r *http.Request, c Completion) error

// ResponseInterceptor wraps an http.ResponseWriter for a single request.  It
// forwards everything unchanged while recording the status and, for error
// statuses, a bounded copy of the body.
type ResponseInterceptor struct {
	http.ResponseWriter

	start        time.Time
	status       int
	wroteHeader  bool
	bytesWritten int64

	maxBody   int
	body      bytes.Buffer
	truncated bool

	completed atomic.Bool
}

// NewResponseInterceptor wraps w.  maxBody caps the captured error body.
func NewResponseInterceptor(w http.ResponseWriter, maxBody int) *ResponseInterceptor {
	if maxBody <= 0 {
		maxBody = DefaultMaxCapturedBody
	}
	return &ResponseInterceptor{
		ResponseWriter: w,
		start:          time.Now(),
		status:         http.StatusOK,
		maxBody:        maxBody,
	}
}

// WriteHeader records the first status code and forwards it.  Later calls are
// dropped, matching what the client actually receives.
func (w *ResponseInterceptor) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

// Write forwards b and keeps a bounded copy when the status is an error.
func (w *ResponseInterceptor) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += int64(n)
	if w.status >= http.StatusBadRequest {
		w.capture(b[:n])
	}
	return n, err
}

func (w *ResponseInterceptor) capture(b []byte) {
	room := w.maxBody - w.body.Len()
	if room <= 0 {
		if len(b) > 0 {
			w.truncated = true
		}
		return
	}
	if len(b) > room {
		b = b[:room]
		w.truncated = true
	}
	w.body.Write(b)
}

// Status returns the status sent to the client, 200 if none was set.
func (w *ResponseInterceptor) Status() int { return w.status }

// BytesWritten returns the number of body bytes forwarded.
func (w *ResponseInterceptor) BytesWritten() int64 { return w.bytesWritten }

// Completion snapshots the response so far.
func (w *ResponseInterceptor) Completion() Completion {
	var body []byte
	if w.body.Len() > 0 {
		body = append([]byte(nil), w.body.Bytes()...)
	}
	return Completion{
		Status:      w.status,
		ContentType: w.Header().Get("Content-Type"),
		Body:        body,
		Truncated:   w.truncated,
		Bytes:       w.bytesWritten,
		Duration:    time.Since(w.start),
	}
}

// Complete runs hook for r at most once.  Subsequent calls are no-ops.
func (w *ResponseInterceptor) Complete(r *http.Request, hook CompletionHook) {
	if hook == nil || !w.completed.CompareAndSwap(false, true) {
		return
	}
	defer func() { _ = recover() }()
	_ = hook(r, w.Completion())
}

// Flush implements http.Flusher for streaming support.
func (w *ResponseInterceptor) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker for WebSocket support.
func (w *ResponseInterceptor) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseInterceptor) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

//Personal.AI order the ending
