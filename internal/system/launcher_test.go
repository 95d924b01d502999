package system

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	r.calls = append(r.calls, append([]string{cmd}, args...))
	if r.err != nil {
		return "", "boom", r.err
	}
	return "", "", nil
}

func TestLauncherOpenBook(t *testing.T) {
	r := &recordingRunner{}
	l := Launcher{Runner: r, Reader: "reader"}
	if err := l.OpenBook(context.Background(), "/mnt/sd/book.epub"); err != nil {
		t.Fatalf("open book: %v", err)
	}
	if len(r.calls) != 1 || strings.Join(r.calls[0], " ") != "reader /mnt/sd/book.epub" {
		t.Fatalf("unexpected calls %v", r.calls)
	}
}

func TestLauncherNotConfigured(t *testing.T) {
	l := Launcher{Runner: &recordingRunner{}, Commands: map[string]string{"settings": "shelf-settings"}}
	if err := l.OpenBook(context.Background(), "/a.epub"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := l.Open(context.Background(), "opds"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := l.Open(context.Background(), "settings"); err != nil {
		t.Fatalf("open settings: %v", err)
	}
}

func TestLauncherWrapsRunnerError(t *testing.T) {
	cause := errors.New("exit 1")
	l := Launcher{Runner: &recordingRunner{err: cause}, Commands: map[string]string{"opds": "opds-browser"}}
	err := l.Open(context.Background(), "opds")
	if !errors.Is(err, cause) || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestExecRunner(t *testing.T) {
	stdout, stderr, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if stdout != "out\n" || stderr != "err\n" {
		t.Fatalf("unexpected output %q %q", stdout, stderr)
	}
	if err == nil || !strings.Contains(err.Error(), "exit 3") {
		t.Fatalf("expected exit status in error, got %v", err)
	}
}
