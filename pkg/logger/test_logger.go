package logger

import "sync"

// TestLogger is a Logger implementation that records entries in memory for
// assertions in tests. Derived loggers share the parent's recording, so
// entries logged through WithField chains remain visible on the root.
type TestLogger struct {
	rec    *recorder
	fields map[string]interface{}
}

// TestEntry is a single recorded log entry
type TestEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

type recorder struct {
	mu      sync.Mutex
	entries []TestEntry
}

// NewTestLogger creates a logger that records instead of writing
func NewTestLogger() *TestLogger {
	return &TestLogger{
		rec:    &recorder{},
		fields: make(map[string]interface{}),
	}
}

// Entries returns a copy of everything logged so far
func (l *TestLogger) Entries() []TestEntry {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	out := make([]TestEntry, len(l.rec.entries))
	copy(out, l.rec.entries)
	return out
}

// HasMessage reports whether any entry carries the given message
func (l *TestLogger) HasMessage(msg string) bool {
	for _, e := range l.Entries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	l.rec.entries = append(l.rec.entries, TestEntry{Level: level, Message: msg, Fields: merged})
}

func (l *TestLogger) Debug(msg string) { l.record("debug", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.record("info", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("warn", msg, nil) }
func (l *TestLogger) Error(msg string) { l.record("error", msg, nil) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{rec: l.rec, fields: merged}
}

func (l *TestLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}
