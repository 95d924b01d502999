package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/shelf/internal/app/activities"
	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/state"
	"github.com/rook-computer/shelf/internal/system"
)

// TickPeriod is how often input is polled and the current activity updated.
const TickPeriod = 10 * time.Millisecond

// Target names an activity this program does not implement itself.
type Target int

const (
	TargetOPDS Target = iota
	TargetFileTransfer
	TargetSettings
)

func (t Target) String() string {
	switch t {
	case TargetOPDS:
		return "opds"
	case TargetFileTransfer:
		return "file-transfer"
	case TargetSettings:
		return "settings"
	default:
		return "unknown"
	}
}

type App struct {
	Source   buttons.Source
	Input    *buttons.Mapped
	Display  render.Display
	Storage  library.Storage
	Recent   state.RecentList
	Settings state.SettingsReader
	Parsers  *books.Registry
	Logger   Logger
	// Graphics switches the console to graphics mode while running.
	Graphics bool

	// External is called for targets handled outside this program. Nil logs and stays.
	External func(target Target)
	// BookOpener hands a selected book to the reader.
	BookOpener func(path string)

	mu      sync.Mutex
	current activities.Activity
	pending activities.Activity

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(source buttons.Source, display render.Display, storage library.Storage) *App {
	return &App{
		Source:  source,
		Display: display,
		Storage: storage,
		Logger:  NoopLogger{},
		exitCh:  make(chan error, 1),
	}
}

// Exit requests Run to return with err.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run enters the Home activity and ticks until ctx is done or Exit is called.
func (app *App) Run(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Input == nil {
		app.Input = buttons.NewMapped(app.Source, app.frontLayout)
	}
	if app.Graphics {
		restore := system.EnterGraphicsConsole(app.Logger)
		defer restore()
	}
	if app.Source != nil {
		if err := app.Source.Start(ctx); err != nil {
			app.Logger.Errorf("input", "start failed: %v", err)
			return fmt.Errorf("start input: %w", err)
		}
		defer func() { _ = app.Source.Stop() }()
	}

	app.GoHome()
	app.switchPending(ctx)
	defer app.exitCurrent()

	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case <-ticker.C:
		}
		app.Tick(ctx)
	}
}

// Tick runs one input/update cycle and applies a requested transition.
func (app *App) Tick(ctx context.Context) {
	app.Input.Update()
	if current := app.Current(); current != nil {
		current.Update()
	}
	app.switchPending(ctx)
}

func (app *App) Current() activities.Activity {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.current
}

func (app *App) switchPending(ctx context.Context) {
	app.mu.Lock()
	next := app.pending
	app.pending = nil
	app.mu.Unlock()
	if next == nil {
		return
	}
	app.exitCurrent()
	app.Logger.Infof("app", "enter %s", next.Name())
	next.Enter(ctx)
	app.mu.Lock()
	app.current = next
	app.mu.Unlock()
}

func (app *App) exitCurrent() {
	app.mu.Lock()
	current := app.current
	app.current = nil
	app.mu.Unlock()
	if current != nil {
		app.Logger.Infof("app", "exit %s", current.Name())
		current.Exit()
	}
}

func (app *App) request(next activities.Activity) {
	app.mu.Lock()
	app.pending = next
	app.mu.Unlock()
}

func (app *App) deps() activities.Deps {
	return activities.Deps{
		Input:    app.Input,
		Display:  app.Display,
		Nav:      app,
		Storage:  app.Storage,
		Recent:   app.Recent,
		Settings: app.Settings,
		Parsers:  app.Parsers,
		Logger:   app.Logger,
	}
}

func (app *App) frontLayout() buttons.FrontLayout {
	if app.Settings == nil {
		return buttons.LayoutBackConfirmLeftRight
	}
	return app.Settings.Snapshot().FrontButtons
}

func (app *App) GoHome() { app.request(activities.NewHome(app.deps())) }

func (app *App) OpenLibrary(tab activities.LibraryTab, path string) {
	app.request(activities.NewLibrary(app.deps(), tab, path))
}

func (app *App) OpenBook(path string) {
	app.Logger.Infof("app", "open book %s", path)
	if app.BookOpener != nil {
		app.BookOpener(path)
	}
}

func (app *App) OpenOPDS()         { app.external(TargetOPDS) }
func (app *App) OpenFileTransfer() { app.external(TargetFileTransfer) }
func (app *App) OpenSettings()     { app.external(TargetSettings) }

func (app *App) external(target Target) {
	if app.External == nil {
		app.Logger.Infof("app", "%s is not available", target)
		return
	}
	app.External(target)
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
