// Package views coordinates which console panel is active. The view set is
// closed; navigation to anything else is rejected with a warning instead of
// a panic, since view ids arrive from the browser.
package views

import (
	"context"
	"sync"

	"github.com/cognigraph/console/pkg/logger"
)

// View identifies one console panel.
type View string

const (
	ViewFiles       View = "files"
	ViewGraphs      View = "graphs"
	ViewChat        View = "chat"
	ViewAgent       View = "agent"
	ViewCollections View = "collections"
	ViewDatabase    View = "database"
	ViewConvert     View = "convert"
	ViewHealth      View = "health"
)

var known = map[View]bool{
	ViewFiles:       true,
	ViewGraphs:      true,
	ViewChat:        true,
	ViewAgent:       true,
	ViewCollections: true,
	ViewDatabase:    true,
	ViewConvert:     true,
	ViewHealth:      true,
}

// Valid reports whether v names a console panel.
func Valid(v View) bool {
	return known[v]
}

// RefreshFunc reloads a view's data when the user navigates to it.
type RefreshFunc func(ctx context.Context) error

// Coordinator tracks the active view and runs the registered refresh action
// exactly once per successful switch. Refresh failures are logged and
// swallowed; navigation itself never fails once the id is valid.
type Coordinator struct {
	mu         sync.Mutex
	current    View
	refreshers map[View]RefreshFunc
	presenter  func(View)
}

type CoordinatorParams struct {
	// Initial is the view shown before any navigation. Defaults to files.
	Initial View
	// Presenter is notified after the active view changes, before the
	// refresh action runs. Optional.
	Presenter func(View)
}

func NewCoordinator(params CoordinatorParams) *Coordinator {
	initial := params.Initial
	if !Valid(initial) {
		initial = ViewFiles
	}
	return &Coordinator{
		current:    initial,
		refreshers: make(map[View]RefreshFunc),
		presenter:  params.Presenter,
	}
}

// Register attaches a refresh action to a view. Registering again replaces
// the previous action.
func (c *Coordinator) Register(view View, refresh RefreshFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshers[view] = refresh
}

// Current returns the active view.
func (c *Coordinator) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SwitchTo activates view. An unknown id leaves the active view untouched
// and reports false. A failing refresh is logged but the switch still
// succeeds; the view renders with whatever data the store already holds.
func (c *Coordinator) SwitchTo(ctx context.Context, view View) bool {
	if !Valid(view) {
		logger.Warn("unknown view requested", "view", string(view))
		return false
	}

	c.mu.Lock()
	c.current = view
	refresh := c.refreshers[view]
	presenter := c.presenter
	c.mu.Unlock()

	if presenter != nil {
		presenter(view)
	}
	if refresh != nil {
		if err := refresh(ctx); err != nil {
			logger.Error("view refresh failed", "view", string(view), "error", err)
		}
	}
	return true
}
