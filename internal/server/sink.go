package server

import (
	"context"
	"time"

	"github.com/cognigraph/console/internal/progress"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/logger"
)

// buildSink feeds the poller's observations into the page session: the
// progress bar, the one-shot notices, and the post-build navigation to the
// graphs view.
type buildSink struct {
	store *state.Store
	views *views.Coordinator
}

func (s *buildSink) BuildProgress(snap progress.Snapshot) {
	s.store.SetBuild(state.BuildSnapshot{
		TaskID:  snap.TaskID,
		Percent: snap.Percent,
		Stage:   snap.Stage,
		Message: snap.Message,
		KGID:    snap.KGID,
		Status:  state.BuildRunning,
	})
}

func (s *buildSink) BuildCompleted(snap progress.Snapshot) {
	s.store.SetBuild(state.BuildSnapshot{
		TaskID:  snap.TaskID,
		Percent: snap.Percent,
		Stage:   snap.Stage,
		KGID:    snap.KGID,
		Status:  state.BuildCompleted,
	})
	s.store.PushNotice(state.NoticeSuccess, "Knowledge graph built successfully")
	logger.Info("knowledge graph build completed", "taskId", snap.TaskID, "kgId", snap.KGID)

	// Switching runs the graphs refresher, which pulls the fresh listing.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.views.SwitchTo(ctx, views.ViewGraphs)
}

func (s *buildSink) BuildFailed(taskID, message string) {
	s.store.SetBuild(state.BuildSnapshot{
		TaskID:  taskID,
		Message: message,
		Status:  state.BuildFailed,
	})
	s.store.PushNotice(state.NoticeError, message)
	logger.Error("knowledge graph build failed", "taskId", taskID, "message", message)
}
