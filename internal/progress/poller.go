// Package progress tracks a knowledge-graph build by polling the platform's
// task endpoint. One poller follows one task at a time; the loop is driven
// by an injected scheduler so tests control time.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

// State is the poller's lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// DefaultInterval is the delay between successive progress checks.
const DefaultInterval = 3 * time.Second

// Scheduler arms a one-shot callback. The production implementation wraps
// time.AfterFunc; tests substitute a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Fetcher reads the current progress of a build task.
type Fetcher interface {
	FetchProgress(ctx context.Context, taskID string) (api.KGProgress, error)
}

// Snapshot is one observed point of a build's progress.
type Snapshot struct {
	TaskID  string
	Percent int
	Stage   string
	Message string
	KGID    string
}

// Sink receives the poller's observations. BuildCompleted and BuildFailed
// each fire at most once per Start.
type Sink interface {
	BuildProgress(snapshot Snapshot)
	BuildCompleted(snapshot Snapshot)
	BuildFailed(taskID, message string)
}

// Poller follows a single build task. Starting a new task or cancelling
// bumps an internal generation counter; a response that comes back for an
// older generation is discarded, so a cancelled or superseded poll can never
// push stale updates into the sink.
type Poller struct {
	mu         sync.Mutex
	scheduler  Scheduler
	fetcher    Fetcher
	sink       Sink
	interval   time.Duration
	state      State
	taskID     string
	generation uint64
}

type PollerParams struct {
	Fetcher   Fetcher
	Sink      Sink
	Scheduler Scheduler
	Interval  time.Duration
}

func NewPoller(params PollerParams) *Poller {
	scheduler := params.Scheduler
	if scheduler == nil {
		scheduler = timerScheduler{}
	}
	interval := params.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		scheduler: scheduler,
		fetcher:   params.Fetcher,
		sink:      params.Sink,
		interval:  interval,
		state:     StateIdle,
	}
}

// State returns the poller's current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins following taskID. Any poll already in flight is superseded.
// The first check is scheduled immediately rather than run inline, so Start
// returns without blocking on the network.
func (p *Poller) Start(ctx context.Context, taskID string) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.state = StatePolling
	p.taskID = taskID
	p.mu.Unlock()

	p.scheduler.AfterFunc(0, func() {
		p.poll(ctx, gen)
	})
}

// Cancel stops the active poll. Returns false when no poll is running. A
// response already in flight for the cancelled generation is discarded when
// it arrives.
func (p *Poller) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePolling {
		return false
	}
	p.generation++
	p.state = StateCancelled
	return true
}

func (p *Poller) poll(ctx context.Context, gen uint64) {
	p.mu.Lock()
	if p.generation != gen || p.state != StatePolling {
		p.mu.Unlock()
		return
	}
	taskID := p.taskID
	p.mu.Unlock()

	resp, err := p.fetcher.FetchProgress(ctx, taskID)

	p.mu.Lock()
	if p.generation != gen || p.state != StatePolling {
		// Cancelled or superseded while the request was in flight.
		p.mu.Unlock()
		logger.Debug("discarding stale progress response", "taskId", taskID)
		return
	}

	if err != nil {
		p.state = StateFailed
		p.mu.Unlock()
		logger.Error("build progress check failed", "taskId", taskID, "error", err)
		p.sink.BuildFailed(taskID, "failed to reach the build service")
		return
	}

	snapshot := Snapshot{
		TaskID:  taskID,
		Percent: resp.Progress,
		Stage:   resp.Stage,
		Message: resp.Message,
		KGID:    resp.KGID,
	}

	switch resp.Status {
	case api.TaskStatusCompleted:
		p.state = StateCompleted
		p.mu.Unlock()
		p.sink.BuildProgress(snapshot)
		p.sink.BuildCompleted(snapshot)
		return
	case api.TaskStatusFailed:
		p.state = StateFailed
		p.mu.Unlock()
		message := resp.Message
		if message == "" {
			message = "knowledge graph build failed"
		}
		p.sink.BuildFailed(taskID, message)
		return
	}

	p.mu.Unlock()
	p.sink.BuildProgress(snapshot)

	// Re-arm only after the response has been fully processed, so at most
	// one request is ever in flight.
	p.mu.Lock()
	if p.generation != gen || p.state != StatePolling {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.scheduler.AfterFunc(p.interval, func() {
		p.poll(ctx, gen)
	})
}
