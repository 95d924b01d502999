package app

import (
	"context"
	"time"
)

// Launcher runs programs that take over the screen and buttons until they exit.
// system.Launcher is the implementation used on the device.
type Launcher interface {
	OpenBook(ctx context.Context, hostPath string) error
	Open(ctx context.Context, target string) error
}

// Suspend stops reading buttons, runs fn and starts reading again. Presses made
// while fn ran are dropped, including ones still queued in the source.
func (app *App) Suspend(ctx context.Context, fn func(ctx context.Context) error) error {
	if app.Source != nil {
		if err := app.Source.Stop(); err != nil {
			app.Logger.Errorf("input", "stop failed: %v", err)
		}
	}
	err := fn(ctx)
	if app.Source != nil {
		if serr := app.Source.Start(ctx); serr != nil {
			app.Logger.Errorf("input", "restart failed: %v", serr)
		}
	}
	if app.Input != nil {
		app.Input.Discard(time.Now())
	}
	return err
}

// UseLauncher routes opened books and external targets through l. record is called
// with the library path once the reader exits; nil just goes back to Home.
func (app *App) UseLauncher(ctx context.Context, l Launcher, record func(path string)) {
	app.BookOpener = func(path string) {
		err := app.Suspend(ctx, func(ctx context.Context) error {
			return l.OpenBook(ctx, app.Storage.Resolve(path))
		})
		if err != nil {
			app.Logger.Errorf("app", "open book: %v", err)
		}
		if record != nil {
			record(path)
			return
		}
		app.GoHome()
	}
	app.External = func(target Target) {
		err := app.Suspend(ctx, func(ctx context.Context) error {
			return l.Open(ctx, target.String())
		})
		if err != nil {
			app.Logger.Errorf("app", "open %s: %v", target, err)
			return
		}
		app.GoHome()
	}
}
