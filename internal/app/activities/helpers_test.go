package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/shelf/internal/activity"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/state"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, component+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.Infof(component, format, args...)
}

// count reports how many logged lines contain substr.
func (l *recordingLogger) count(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

type recordingNav struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNav) record(call string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
}

func (n *recordingNav) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func (n *recordingNav) GoHome() { n.record("home") }
func (n *recordingNav) OpenLibrary(tab LibraryTab, path string) {
	n.record(fmt.Sprintf("library:%s:%s", tab, path))
}
func (n *recordingNav) OpenBook(path string) { n.record("book:" + path) }
func (n *recordingNav) OpenOPDS()            { n.record("opds") }
func (n *recordingNav) OpenFileTransfer()    { n.record("transfer") }
func (n *recordingNav) OpenSettings()        { n.record("settings") }

type harness struct {
	root    string
	src     *buttons.ChanSource
	input   *buttons.Mapped
	nav     *recordingNav
	display *render.MemoryDisplay
	deps    Deps
}

func newHarness(t *testing.T, opdsURL string, recent ...state.RecentBook) *harness {
	t.Helper()
	root := t.TempDir()
	src := buttons.NewChanSource(16)
	input := buttons.NewMapped(src, nil)
	nav := &recordingNav{}
	display := render.NewMemoryDisplay()
	return &harness{
		root:    root,
		src:     src,
		input:   input,
		nav:     nav,
		display: display,
		deps: Deps{
			Input:    input,
			Display:  display,
			Nav:      nav,
			Storage:  library.OSStorage{Root: root},
			Recent:   state.NewRecentBooks(recent...),
			Settings: state.NewSettings(state.SettingsSnapshot{OPDSURL: opdsURL}),
		},
	}
}

// touch creates the file or, with a trailing slash, the directory rel under the root.
func (h *harness) touch(t *testing.T, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		full := filepath.Join(h.root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("book"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// start enters act and waits until its data is loaded.
func (h *harness) start(t *testing.T, act Activity, task func() *activity.RenderTask) {
	t.Helper()
	act.Enter(context.Background())
	t.Cleanup(act.Exit)
	waitFor(t, "ready phase", func() bool { return task().Phase() == activity.PhaseReady })
}

// tap presses and releases b within one tick, then runs the controller.
func (h *harness) tap(act Activity, b buttons.Button, hold time.Duration) {
	h.src.Tap(b, time.Now(), hold)
	h.input.Update()
	act.Update()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func expectCalls(t *testing.T, nav *recordingNav, want ...string) {
	t.Helper()
	got := nav.Calls()
	if len(got) != len(want) {
		t.Fatalf("navigation calls %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("navigation calls %v, want %v", got, want)
		}
	}
}
