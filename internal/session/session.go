// Package session generates and manages the client-side conversation ids
// that correlate multi-turn chat with server-side memory.
package session

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Kind distinguishes the console's conversation surfaces. Exactly one
// session id per kind is active at a time.
type Kind string

const (
	KindQA    Kind = "qa"
	KindAgent Kind = "agent"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Registry stores one session id per kind. EnsureSession must run gen and
// the store of its result inside a single critical section, so two callers
// can never both observe "absent" and create different ids.
type Registry interface {
	EnsureSession(kind Kind, gen func() string) string
	ClearSession(kind Kind)
}

// Generate produces a session id that is unique with overwhelming
// probability within a page session: kind tag, unix-milli timestamp and a
// short random suffix.
func Generate(kind Kind) string {
	suffix := gonanoid.MustGenerate(suffixAlphabet, 8)
	return fmt.Sprintf("%s_%d_%s", kind, time.Now().UnixMilli(), suffix)
}

// GetOrCreate returns the active session id for kind, creating and storing
// a fresh one if none exists.
func GetOrCreate(registry Registry, kind Kind) string {
	return registry.EnsureSession(kind, func() string {
		return Generate(kind)
	})
}

// Clear invalidates the active session id for kind. The next GetOrCreate
// returns a different id.
func Clear(registry Registry, kind Kind) {
	registry.ClearSession(kind)
}
