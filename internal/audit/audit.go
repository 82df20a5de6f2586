// Package audit appends structured operator events to a JSONL file.
// Restart attempts and privilege/connectivity tests are recorded with the
// acting user so the log answers "who rebooted that box".
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Sink receives named events with structured details.
type Sink interface {
	Event(name string, details map[string]interface{})
}

// Logger writes events as one JSON object per line.
type Logger struct {
	mu   sync.Mutex
	path string
	user string

	// now is swappable for tests.
	now func() time.Time
}

// record is the wire shape of one audit line.
type record struct {
	TS      string                 `json:"ts"`
	User    string                 `json:"user,omitempty"`
	Event   string                 `json:"event"`
	Details map[string]interface{} `json:"details"`
}

// New creates a logger appending to the given path.
func New(path string) *Logger {
	return &Logger{
		path: path,
		now:  time.Now,
	}
}

// SetUser records the acting operator for subsequent events.
func (l *Logger) SetUser(user string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = user
}

// User returns the acting operator, if set.
func (l *Logger) User() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user
}

// Event appends one event. Failures are swallowed: an unwritable audit
// file must never block a restart or a refresh.
func (l *Logger) Event(name string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if details == nil {
		details = map[string]interface{}{}
	}
	rec := record{
		TS:      l.now().UTC().Format(time.RFC3339),
		User:    l.user,
		Event:   name,
		Details: sanitize(details),
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
}

// RotateIfNeeded rotates the log once it crosses maxBytes, keeping the
// given number of older files (audit.log.1 is the newest rotation).
func (l *Logger) RotateIfNeeded(maxBytes int64, keep int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil || info.Size() < maxBytes {
		return
	}

	for i := keep - 1; i > 0; i-- {
		older := fmt.Sprintf("%s.%d", l.path, i)
		newer := fmt.Sprintf("%s.%d", l.path, i+1)
		if _, err := os.Stat(older); err == nil {
			_ = os.Rename(older, newer)
		}
	}
	_ = os.Rename(l.path, l.path+".1")
}

// sanitize keeps detail values JSON-encodable, stringifying anything else.
func sanitize(details map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(details))
	for k, v := range details {
		switch v.(type) {
		case nil, string, bool,
			int, int32, int64, float32, float64,
			[]string, map[string]interface{}:
			out[k] = v
		default:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

// Noop returns a sink that discards all events.
func Noop() Sink {
	return noopSink{}
}

type noopSink struct{}

func (noopSink) Event(string, map[string]interface{}) {}
