package views

import (
	"context"
	"errors"
	"testing"

	"github.com/cognigraph/console/pkg/logger"
	"github.com/cognigraph/console/pkg/logger/memory"
)

func TestSwitchTo_UnknownViewIsRejected(t *testing.T) {
	mem := memory.NewMemoryLogger()
	logger.Init(mem)

	c := NewCoordinator(CoordinatorParams{Initial: ViewGraphs})

	if c.SwitchTo(context.Background(), View("payments")) {
		t.Fatal("expected switch to an unknown view to report false")
	}
	if got := c.Current(); got != ViewGraphs {
		t.Fatalf("got active view %q, want %q unchanged", got, ViewGraphs)
	}

	warnings := mem.ByLevel("warn")
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Message != "unknown view requested" {
		t.Fatalf("got warning %q", warnings[0].Message)
	}
}

func TestSwitchTo_RunsRefreshOnce(t *testing.T) {
	logger.Init(memory.NewMemoryLogger())

	c := NewCoordinator(CoordinatorParams{})
	calls := 0
	c.Register(ViewGraphs, func(ctx context.Context) error {
		calls++
		return nil
	})

	if !c.SwitchTo(context.Background(), ViewGraphs) {
		t.Fatal("expected switch to succeed")
	}
	if calls != 1 {
		t.Fatalf("got %d refresh calls, want 1", calls)
	}
	if got := c.Current(); got != ViewGraphs {
		t.Fatalf("got active view %q, want %q", got, ViewGraphs)
	}
}

func TestSwitchTo_RefreshFailureDoesNotPropagate(t *testing.T) {
	mem := memory.NewMemoryLogger()
	logger.Init(mem)

	c := NewCoordinator(CoordinatorParams{})
	c.Register(ViewFiles, func(ctx context.Context) error {
		return errors.New("upstream unreachable")
	})

	if !c.SwitchTo(context.Background(), ViewFiles) {
		t.Fatal("expected switch to succeed despite refresh failure")
	}
	if got := c.Current(); got != ViewFiles {
		t.Fatalf("got active view %q, want %q", got, ViewFiles)
	}
	if len(mem.ByLevel("error")) != 1 {
		t.Fatalf("expected the refresh failure to be logged once, got %d", len(mem.ByLevel("error")))
	}
}

func TestSwitchTo_PresenterSeesNewViewBeforeRefresh(t *testing.T) {
	logger.Init(memory.NewMemoryLogger())

	var order []string
	c := NewCoordinator(CoordinatorParams{
		Presenter: func(v View) {
			order = append(order, "present:"+string(v))
		},
	})
	c.Register(ViewChat, func(ctx context.Context) error {
		order = append(order, "refresh")
		return nil
	})

	c.SwitchTo(context.Background(), ViewChat)

	if len(order) != 2 || order[0] != "present:chat" || order[1] != "refresh" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestNewCoordinator_DefaultsToFiles(t *testing.T) {
	c := NewCoordinator(CoordinatorParams{})
	if got := c.Current(); got != ViewFiles {
		t.Fatalf("got initial view %q, want %q", got, ViewFiles)
	}
}
