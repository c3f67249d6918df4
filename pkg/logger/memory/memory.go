// Package memory provides a logger backend that records entries in memory.
// It is used by tests that assert on logged warnings, for example the view
// coordinator's unknown-view handling.
package memory

import "sync"

// Entry is a single recorded log call.
type Entry struct {
	Level   string
	Message string
	Keyvals []any
}

// MemoryLogger implements logger.Instance by appending entries to a slice.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates an empty in-memory logger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) record(level, message string, keyvals []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Level: level, Message: message, Keyvals: keyvals})
}

func (m *MemoryLogger) Debug(message string, keyvals ...any) {
	m.record("debug", message, keyvals)
}

func (m *MemoryLogger) Info(message string, keyvals ...any) {
	m.record("info", message, keyvals)
}

func (m *MemoryLogger) Warn(message string, keyvals ...any) {
	m.record("warn", message, keyvals)
}

func (m *MemoryLogger) Error(message string, keyvals ...any) {
	m.record("error", message, keyvals)
}

// Fatal records the entry but does not terminate, so tests can assert on it.
func (m *MemoryLogger) Fatal(message string, keyvals ...any) {
	m.record("fatal", message, keyvals)
}

// Entries returns a copy of everything recorded so far.
func (m *MemoryLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// ByLevel returns the recorded entries matching level.
func (m *MemoryLogger) ByLevel(level string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
