package app

import (
	"context"
	"testing"
	"time"

	"github.com/rook-computer/shelf/internal/app/activities"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/state"
	"github.com/rook-computer/shelf/internal/system"
)

// restartableSource counts Start/Stop around a ChanSource.
type restartableSource struct {
	*buttons.ChanSource
	running bool
	starts  int
	stops   int
}

func (s *restartableSource) Start(ctx context.Context) error {
	s.running = true
	s.starts++
	return nil
}

func (s *restartableSource) Stop() error {
	s.running = false
	s.stops++
	return nil
}

type scriptedRunner struct {
	calls  [][]string
	during func()
}

func (r *scriptedRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	r.calls = append(r.calls, append([]string{cmd}, args...))
	if r.during != nil {
		r.during()
	}
	return "", "", nil
}

func newLaunchApp(t *testing.T) (*App, *restartableSource) {
	t.Helper()
	src := &restartableSource{ChanSource: buttons.NewChanSource(128)}
	a := New(src, render.NewMemoryDisplay(), library.OSStorage{Root: t.TempDir()})
	a.Recent = state.NewRecentBooks()
	a.Settings = state.NewSettings(state.SettingsSnapshot{})
	a.Input = buttons.NewMapped(src, a.frontLayout)
	t.Cleanup(a.exitCurrent)
	_ = src.Start(context.Background())
	return a, src
}

func TestReaderInputDoesNotLeakIntoShell(t *testing.T) {
	ctx := context.Background()
	a, src := newLaunchApp(t)
	late := make(chan struct{})
	runner := &scriptedRunner{}
	runner.during = func() {
		if src.running {
			t.Errorf("buttons still read while the reader runs")
		}
		// The reader is driven with the same buttons.
		for i := 0; i < 40; i++ {
			src.Tap(buttons.Down, time.Now(), 5*time.Millisecond)
		}
		src.Tap(buttons.Confirm, time.Now(), 5*time.Millisecond)
		// A press still in flight when the reader exits.
		stamp := time.Now()
		go func() {
			time.Sleep(30 * time.Millisecond)
			src.Tap(buttons.Confirm, stamp, 5*time.Millisecond)
			close(late)
		}()
	}
	a.UseLauncher(ctx, system.Launcher{Runner: runner, Reader: "reader"}, nil)

	a.GoHome()
	a.switchPending(ctx)
	a.OpenBook("/shelf/a.txt")
	if len(runner.calls) != 1 {
		t.Fatalf("expected one reader launch, got %v", runner.calls)
	}
	if want := a.Storage.Resolve("/shelf/a.txt"); runner.calls[0][1] != want {
		t.Fatalf("reader got %v, want %s", runner.calls[0], want)
	}
	if !src.running || src.starts != 2 || src.stops != 1 {
		t.Fatalf("source not restarted: running=%v starts=%d stops=%d", src.running, src.starts, src.stops)
	}

	<-late
	for i := 0; i < 5; i++ {
		a.Tick(ctx)
	}
	if got := currentName(a); got != "home" {
		t.Fatalf("stale reader input reached the shell, now in %q", got)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("reader relaunched by stale input: %v", runner.calls)
	}

	tap(ctx, a, src.ChanSource, buttons.Confirm)
	if got := currentName(a); got != "library" {
		t.Fatalf("fresh press after the reader should work, got %q", got)
	}
}

func TestExternalTargetRunsCommandAndReturnsHome(t *testing.T) {
	ctx := context.Background()
	a, src := newLaunchApp(t)
	runner := &scriptedRunner{}
	runner.during = func() { src.Tap(buttons.Confirm, time.Now(), 0) }
	a.UseLauncher(ctx, system.Launcher{
		Runner:   runner,
		Commands: map[string]string{"settings": "shelf-settings"},
	}, nil)

	a.OpenLibrary(activities.TabFiles, "/")
	a.switchPending(ctx)
	a.OpenSettings()
	if len(runner.calls) != 1 || runner.calls[0][0] != "shelf-settings" {
		t.Fatalf("unexpected launches %v", runner.calls)
	}
	a.Tick(ctx)
	if got := currentName(a); got != "home" {
		t.Fatalf("expected home after settings exit, got %q", got)
	}

	// Unconfigured targets leave the current activity alone.
	a.OpenOPDS()
	a.Tick(ctx)
	if len(runner.calls) != 1 || currentName(a) != "home" {
		t.Fatalf("unconfigured target launched something: %v in %q", runner.calls, currentName(a))
	}
}
