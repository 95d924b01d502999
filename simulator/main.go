package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rook-computer/shelf/internal/app"
	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/state"
)

func main() {
	libraryRoot := flag.String("library", "/tmp/shelf-sim/library", "simulated book storage; seeded with sample books when empty")
	opdsURL := flag.String("opds", "", "OPDS URL; shows the OPDS entry on the home screen")
	frontButtons := flag.String("front-buttons", buttons.LayoutBackConfirmLeftRight.String(), "front button layout")
	logPath := flag.String("log", "", "write the app log to this file")
	flag.Parse()

	layout, err := buttons.ParseFrontLayout(*frontButtons)
	if err != nil {
		fmt.Println("front buttons:", err)
		os.Exit(2)
	}
	root := filepath.Clean(*libraryRoot)
	if err := seedLibrary(root); err != nil {
		fmt.Println("seed library error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(2)
		}
		defer f.Close()
		logger = app.NewFileLogger(f)
	}

	recentFile := filepath.Join(root, ".shelf", "recent.yaml")
	recent, err := state.LoadRecentBooks(recentFile)
	if err != nil {
		logger.Errorf("sim", "recent books: %v", err)
		recent = state.NewRecentBooks()
	}

	src := buttons.NewChanSource(64)
	display := render.NewMemoryDisplay()
	a := app.New(src, display, library.OSStorage{Root: root})
	a.Logger = logger
	a.Recent = recent
	a.Settings = state.NewSettings(state.SettingsSnapshot{OPDSURL: *opdsURL, FrontButtons: layout})
	a.Parsers = books.NewRegistry(filepath.Join(root, ".shelf", "cache"))

	model := newModel(display, src)
	program := tea.NewProgram(model, tea.WithAltScreen())
	display.OnPush = func() { program.Send(frameMsg{}) }

	record := a.RecordRecent(recent, recentFile)
	a.BookOpener = func(path string) {
		program.Send(statusMsg("opened " + path))
		record(path)
	}
	a.External = func(target app.Target) {
		program.Send(statusMsg(target.String() + " is handled by another activity"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	if _, err := program.Run(); err != nil {
		fmt.Println("simulator error:", err)
	}
	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		fmt.Println("app error:", err)
	}
}

// seedLibrary fills an empty root with a few sample books.
func seedLibrary(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	samples := map[string]string{
		"Getting Started.md":                  "# Shelf\n\nUse the arrow keys to move, enter to open.\n",
		"Classics/Moby Dick.txt":              "Call me Ishmael.\n",
		"Classics/Pride and Prejudice.txt":    "It is a truth universally acknowledged.\n",
		"Classics/Poetry/Leaves of Grass.txt": "I celebrate myself.\n",
		"Comics/.thumbs/ignored.txt":          "",
		"Comics/notes.pdf":                    "%PDF-1.4\n",
	}
	for rel, body := range samples {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}
