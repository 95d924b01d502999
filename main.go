package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/shelf/internal/app"
	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/config"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/state"
	"github.com/rook-computer/shelf/internal/system"
)

func main() {
	fmt.Println("Shelf starting")

	// Flags
	configPath := flag.String("config", "", "config file; defaults to $"+config.EnvConfigPath+" or "+config.DefaultConfigPath)
	debug := flag.Bool("debug", false, "enable debug logging to ./shelf-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via SHELF_STDIO_LOG")
	noGraphics := flag.Bool("no-graphics", false, "leave the console in text mode")
	flag.Parse()

	// The console stays in graphics mode after a crash, so panics are only readable from a file.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("SHELF_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./shelf-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	path := *configPath
	if path == "" {
		path = config.PathFromEnv()
	}
	cfg, err := config.Load(path)
	if cfg == nil {
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	if err != nil {
		logger.Errorf("main", "config %s: %v", path, err)
	}
	logger.Infof("main", "config %s, library %s", path, cfg.LibraryRoot)

	recent, err := state.LoadRecentBooks(cfg.RecentBooksFile)
	if err != nil {
		logger.Errorf("main", "recent books: %v", err)
		recent = state.NewRecentBooks()
	}
	settings := state.NewSettings(state.SettingsSnapshot{
		OPDSURL:      cfg.OPDSURL,
		FrontButtons: cfg.FrontLayout(),
	})

	display, err := render.OpenFramebuffer(cfg.Framebuffer, logger)
	if err != nil {
		fmt.Println("display error:", err)
		os.Exit(1)
	}
	defer display.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	storage := library.OSStorage{Root: cfg.LibraryRoot}
	a := app.New(system.NewEvdevSource(cfg.InputDevices, logger), display, storage)
	a.Logger = logger
	a.Recent = recent
	a.Settings = settings
	a.Parsers = books.NewRegistry(cfg.CacheDir)
	a.Graphics = !*noGraphics

	// External programs own the screen and buttons while they run; the tick loop waits.
	launcher := system.Launcher{Reader: cfg.ReaderCommand, Commands: cfg.ActivityCommands, Logger: logger}
	a.UseLauncher(ctx, launcher, a.RecordRecent(recent, cfg.RecentBooksFile))

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
