package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNotConfigured is returned when no command is set up for a launch target.
var ErrNotConfigured = errors.New("no command configured")

// Runner executes a command and returns its output.
type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs commands directly, resolving them through PATH.
// It returns stdout, stderr, and an error if the command exits non-zero.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return outBuf.String(), errBuf.String(), fmt.Errorf("exit %d: %w", exitErr.ExitCode(), err)
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}

// Launcher hands books and activities this program does not implement to external
// programs. Each program owns the display and buttons until it exits.
type Launcher struct {
	Runner Runner
	// Reader is called with the host path of the book to open.
	Reader string
	// Commands maps an activity name ("opds", "file-transfer", "settings") to a command.
	Commands map[string]string
	Logger   logger
}

func (l Launcher) OpenBook(ctx context.Context, hostPath string) error {
	if l.Reader == "" {
		return fmt.Errorf("reader: %w", ErrNotConfigured)
	}
	return l.run(ctx, "reader", l.Reader, hostPath)
}

func (l Launcher) Open(ctx context.Context, target string) error {
	cmd := l.Commands[target]
	if cmd == "" {
		return fmt.Errorf("%s: %w", target, ErrNotConfigured)
	}
	return l.run(ctx, target, cmd)
}

func (l Launcher) run(ctx context.Context, name, cmd string, args ...string) error {
	runner := l.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	if l.Logger != nil {
		l.Logger.Infof("launch", "%s: %s %v", name, cmd, args)
	}
	_, stderr, err := runner.Run(ctx, cmd, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, stderr)
	}
	return nil
}
