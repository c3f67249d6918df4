package session

import (
	"strings"
	"testing"
)

type mapRegistry struct {
	ids map[Kind]string
}

func newMapRegistry() *mapRegistry {
	return &mapRegistry{ids: make(map[Kind]string)}
}

func (r *mapRegistry) EnsureSession(kind Kind, gen func() string) string {
	if id, ok := r.ids[kind]; ok {
		return id
	}
	id := gen()
	r.ids[kind] = id
	return id
}

func (r *mapRegistry) ClearSession(kind Kind) {
	delete(r.ids, kind)
}

func TestGenerate_Format(t *testing.T) {
	t.Parallel()

	id := Generate(KindQA)
	parts := strings.Split(id, "_")
	if len(parts) != 3 {
		t.Fatalf("expected kind_timestamp_suffix, got %q", id)
	}
	if parts[0] != "qa" {
		t.Fatalf("got prefix %q, want %q", parts[0], "qa")
	}
	if len(parts[2]) != 8 {
		t.Fatalf("got suffix %q, want 8 characters", parts[2])
	}
}

func TestGenerate_DistinctIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate(KindAgent)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGetOrCreate_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	reg := newMapRegistry()
	first := GetOrCreate(reg, KindQA)
	second := GetOrCreate(reg, KindQA)
	if first != second {
		t.Fatalf("got %q then %q, want the same id", first, second)
	}
}

func TestGetOrCreate_KindsAreIndependent(t *testing.T) {
	t.Parallel()

	reg := newMapRegistry()
	qa := GetOrCreate(reg, KindQA)
	agent := GetOrCreate(reg, KindAgent)
	if qa == agent {
		t.Fatalf("expected distinct ids per kind, got %q for both", qa)
	}

	Clear(reg, KindQA)
	if got := GetOrCreate(reg, KindAgent); got != agent {
		t.Fatalf("clearing qa must not touch agent: got %q, want %q", got, agent)
	}
}

func TestClear_NextIDDiffers(t *testing.T) {
	t.Parallel()

	reg := newMapRegistry()
	first := GetOrCreate(reg, KindQA)
	Clear(reg, KindQA)
	second := GetOrCreate(reg, KindQA)
	if first == second {
		t.Fatalf("expected a fresh id after clear, got %q twice", first)
	}
}
