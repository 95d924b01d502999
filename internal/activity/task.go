package activity

import (
	"context"
	"sync"
	"sync/atomic"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Phase tracks how far an activity got with its deferred data load.
type Phase int32

const (
	// PhaseShell: nothing loaded yet; the next pass draws the shell only.
	PhaseShell Phase = iota
	// PhaseLoading: the shell is on screen and the load function is running.
	PhaseLoading
	// PhaseReady: data is loaded (or the activity has nothing to load).
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseShell:
		return "shell"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// RenderTask is the per-activity background renderer.
//
// Render requests go through a single-slot queue, so any number of requests made while a
// pass is pending collapse into one pass. Every pass runs under the render mutex that
// also guards teardown: once Stop returns no pass is running and none will start.
type RenderTask struct {
	Name   string
	Logger Logger

	render func(phase Phase)
	load   func(ctx context.Context)

	mu       sync.Mutex // render mutex
	stopping bool

	wake   chan struct{}
	phase  atomic.Int32
	cancel context.CancelFunc
	wg     sync.WaitGroup
	passes atomic.Int64
}

// NewRenderTask builds a task that calls render for every pass. When load is non-nil the
// task starts in PhaseShell and runs load once after the first pass has been pushed.
func NewRenderTask(name string, render func(phase Phase), load func(ctx context.Context)) *RenderTask {
	task := &RenderTask{
		Name:   name,
		render: render,
		load:   load,
		wake:   make(chan struct{}, 1),
	}
	if load == nil {
		task.phase.Store(int32(PhaseReady))
	}
	return task
}

// Start launches the worker and queues the first pass.
func (t *RenderTask) Start(ctx context.Context) {
	taskCtx, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	t.cancel = cancel
	t.stopping = false
	t.mu.Unlock()

	t.wg.Add(1)
	go t.run(taskCtx)
	t.RequestRender()
}

// RequestRender marks the frame dirty. It never blocks.
func (t *RenderTask) RequestRender() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *RenderTask) Phase() Phase { return Phase(t.phase.Load()) }

// Passes reports how many render passes completed.
func (t *RenderTask) Passes() int64 { return t.passes.Load() }

func (t *RenderTask) run(ctx context.Context) {
	defer t.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.wake:
		}
		if !t.pass() {
			return
		}
		if t.phase.CompareAndSwap(int32(PhaseShell), int32(PhaseLoading)) {
			t.startLoad(ctx)
		}
	}
}

// pass renders one frame under the render mutex. It reports false once the task is
// stopping.
func (t *RenderTask) pass() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopping {
		return false
	}
	t.render(t.Phase())
	t.passes.Add(1)
	return true
}

func (t *RenderTask) startLoad(ctx context.Context) {
	if t.Logger != nil {
		t.Logger.Infof("activity", "%s: shell drawn, loading data", t.Name)
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.load(ctx)
		if ctx.Err() != nil {
			return
		}
		t.phase.Store(int32(PhaseReady))
		t.RequestRender()
	}()
}

// Stop waits for any pass in flight, then tears the worker down.
// The wait for the render mutex is unbounded.
func (t *RenderTask) Stop() {
	t.mu.Lock()
	t.stopping = true
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}
