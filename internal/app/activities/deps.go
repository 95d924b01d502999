// Package activities holds the Home and Library activities. Each activity splits into a
// controller (Update, called from the host tick) and render passes run by its own
// activity.RenderTask. Controller and render share state only through a mutex-guarded
// snapshot; the render mutex belongs to the task alone.
package activities

import (
	"context"
	"image"

	"github.com/rook-computer/shelf/internal/activity"
	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/render/layout"
	"github.com/rook-computer/shelf/internal/state"
)

// LibraryTab selects the Library activity's list.
type LibraryTab int

const (
	TabRecent LibraryTab = iota
	TabFiles
)

func (t LibraryTab) String() string {
	if t == TabFiles {
		return "files"
	}
	return "recent"
}

// Navigator receives the transitions an activity requests. Implementations must not call
// back into the requesting activity synchronously.
type Navigator interface {
	GoHome()
	OpenLibrary(tab LibraryTab, path string)
	OpenBook(path string)
	OpenOPDS()
	OpenFileTransfer()
	OpenSettings()
}

// Activity is what the host drives: Enter once, Update every tick, Exit once.
type Activity interface {
	Name() string
	Enter(ctx context.Context)
	Update()
	Exit()
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Deps are the collaborators shared by all activities.
type Deps struct {
	Input    *buttons.Mapped
	Display  render.Display
	Nav      Navigator
	Storage  library.Storage
	Recent   state.RecentList
	Settings state.SettingsReader
	Parsers  *books.Registry
	Logger   Logger
}

func (d Deps) opdsEnabled() bool {
	return d.Settings != nil && d.Settings.Snapshot().OPDSURL != ""
}

func (d Deps) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Infof("activity", format, args...)
	}
}

func (d Deps) errorf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Errorf("activity", format, args...)
	}
}

func (d Deps) labels(back, confirm, previous, next string) [4]string {
	if d.Input == nil {
		return [4]string{back, confirm, previous, next}
	}
	return d.Input.Labels(back, confirm, previous, next)
}

// push sends the finished canvas to the display. Display errors only get logged.
func (d Deps) push(name string, canvas *render.Canvas) {
	if d.Display == nil {
		return
	}
	if err := d.Display.Push(canvas.Image()); err != nil {
		d.errorf("%s: push failed: %v", name, err)
	}
}

func newTask(name string, d Deps, renderFn func(activity.Phase), load func(context.Context)) *activity.RenderTask {
	task := activity.NewRenderTask(name, renderFn, load)
	if d.Logger != nil {
		task.Logger = d.Logger
	}
	return task
}

// frame splits the screen into header, body and button hints.
func frame(bounds image.Rectangle) (header, body, hints image.Rectangle) {
	header, rest := layout.SplitTop(bounds, render.HeaderHeight)
	body, hints = layout.SplitBottom(rest, render.HintsHeight)
	return header, body, hints
}
