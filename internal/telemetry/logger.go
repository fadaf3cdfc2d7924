package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// EventLog appends structured session events as JSON lines. An empty
// path yields a no-op sink so callers never branch on logging being
// enabled.
type EventLog struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func NewEventLog(path string) (*EventLog, error) {
	if path == "" {
		return &EventLog{w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &EventLog{w: f}, nil
}

func (l *EventLog) Info(msg string, fields map[string]any) {
	l.log("info", msg, fields)
}

func (l *EventLog) Error(msg string, fields map[string]any) {
	l.log("error", msg, fields)
}

func (l *EventLog) log(level, msg string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"event": msg,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *EventLog) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
