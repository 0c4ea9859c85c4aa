// Package testutil provides common test utilities for the job portal.
package testutil

import (
	"sync"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
)

// RecordingLogger implements logging.Logger and keeps every entry in memory.
// Children created with With or Named share the parent's buffer.
type RecordingLogger struct {
	sink   *sink
	name   string
	fields []logging.Field
}

type sink struct {
	mu       sync.Mutex
	messages []LogMessage
}

// LogMessage represents a single log entry captured by RecordingLogger.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

// Field returns the value of the named field and whether it was present.
func (m LogMessage) Field(key string) (interface{}, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{sink: &sink{}}
}

func (l *RecordingLogger) log(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.messages = append(l.sink.messages, LogMessage{
		Level:   level,
		Logger:  l.name,
		Message: msg,
		Fields:  all,
	})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.log("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.log("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.log("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.log("error", msg, fields) }

// Fatal records the entry at "fatal" level without exiting.
func (l *RecordingLogger) Fatal(msg string, fields ...logging.Field) { l.log("fatal", msg, fields) }

func (l *RecordingLogger) With(fields ...logging.Field) logging.Logger {
	child := &RecordingLogger{sink: l.sink, name: l.name}
	child.fields = append(append(child.fields, l.fields...), fields...)
	return child
}

func (l *RecordingLogger) Named(name string) logging.Logger {
	child := &RecordingLogger{sink: l.sink, name: name, fields: l.fields}
	if l.name != "" {
		child.name = l.name + "." + name
	}
	return child
}

func (l *RecordingLogger) Sync() error { return nil }

// Messages returns a copy of all recorded entries.
func (l *RecordingLogger) Messages() []LogMessage {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]LogMessage, len(l.sink.messages))
	copy(out, l.sink.messages)
	return out
}

// Clear removes all recorded entries.
func (l *RecordingLogger) Clear() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.messages = l.sink.messages[:0]
}

// HasMessage reports whether an entry with level and msg was recorded.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	return len(l.Filter(level, msg)) > 0
}

// Filter returns the entries with level and msg.  An empty level matches any.
func (l *RecordingLogger) Filter(level, msg string) []LogMessage {
	var out []LogMessage
	for _, m := range l.Messages() {
		if (level == "" || m.Level == level) && m.Message == msg {
			out = append(out, m)
		}
	}
	return out
}

var _ logging.Logger = (*RecordingLogger)(nil)

//Personal.AI order the ending
