package activities

import (
	"context"
	"image"
	"path"
	"sync"
	"time"

	"github.com/rook-computer/shelf/internal/activity"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/render/layout"
	"github.com/rook-computer/shelf/internal/state"
)

const (
	skipPageHold = 700 * time.Millisecond
	goRootHold   = 1000 * time.Millisecond
)

var libraryTabs = []string{"Recent", "Files"}

// Library lists recently opened books and browses the storage.
type Library struct {
	deps      Deps
	startTab  LibraryTab
	startPath string
	canvas    *render.Canvas
	task      *activity.RenderTask
	pageRows  int

	mu       sync.RWMutex
	tab      LibraryTab
	dir      string
	files    []library.Entry
	recent   []library.RecentBookInfo
	selected int
}

// NewLibrary opens on tab; the Files tab starts in dir.
func NewLibrary(deps Deps, tab LibraryTab, dir string) *Library {
	canvas := render.NewCanvas()
	canvas.Logger = deps.Logger
	_, _, list, _ := libraryLayout(canvas.Bounds())
	return &Library{
		deps:      deps,
		startTab:  tab,
		startPath: dir,
		canvas:    canvas,
		pageRows:  activity.PageSize(list.Dy(), render.ListRowHeight),
	}
}

func (l *Library) Name() string { return "library" }

func (l *Library) Enter(ctx context.Context) {
	dir := path.Clean("/" + l.startPath)
	if l.deps.Storage == nil || !l.deps.Storage.Exists(dir) {
		dir = library.Root
	}
	l.mu.Lock()
	l.tab = l.startTab
	l.dir = dir
	l.files = nil
	l.recent = nil
	l.selected = 0
	l.mu.Unlock()

	l.task = newTask(l.Name(), l.deps, l.render, l.load)
	l.task.Start(ctx)
}

func (l *Library) Exit() {
	if l.task != nil {
		l.task.Stop()
	}
}

func (l *Library) load(ctx context.Context) {
	l.mu.RLock()
	dir := l.dir
	l.mu.RUnlock()

	files := l.list(dir)
	recent, err := library.LoadRecentBooks(ctx, library.RecentOptions{
		Storage: l.deps.Storage,
		Recent:  l.deps.Recent,
		Parsers: l.deps.Parsers,
		Limit:   state.MaxRecentBooks,
		Logger:  l.deps.Logger,
	})
	if err != nil {
		return
	}
	l.mu.Lock()
	l.files = files
	l.recent = recent
	l.mu.Unlock()
}

// list reads dir; errors leave the list empty.
func (l *Library) list(dir string) []library.Entry {
	if l.deps.Storage == nil {
		return nil
	}
	files, err := library.List(l.deps.Storage, dir)
	if err != nil {
		l.deps.errorf("library: list %s: %v", dir, err)
		return nil
	}
	return files
}

func (l *Library) Update() {
	in := l.deps.Input
	if l.task.Phase() != activity.PhaseReady {
		if in.WasReleased(buttons.Back) {
			l.deps.Nav.GoHome()
		}
		return
	}

	l.mu.RLock()
	tab, dir := l.tab, l.dir
	l.mu.RUnlock()
	held := in.HeldTime()

	if in.IsPressed(buttons.Back) && held >= goRootHold {
		if tab == TabFiles && !library.IsRoot(dir) {
			l.changeDir(library.Root, "")
		}
		return
	}

	switch {
	case in.WasReleased(buttons.Confirm):
		l.confirm()
	case in.WasReleased(buttons.Back):
		l.back(tab, dir, held)
	case in.WasAnyReleased(buttons.Up, buttons.Down):
		l.mu.Lock()
		if l.tab == TabFiles {
			l.tab = TabRecent
		} else {
			l.tab = TabFiles
		}
		l.selected = 0
		l.mu.Unlock()
		l.task.RequestRender()
	case in.WasReleased(buttons.Left):
		l.move(false, held > skipPageHold)
	case in.WasReleased(buttons.Right):
		l.move(true, held > skipPageHold)
	}
}

func (l *Library) back(tab LibraryTab, dir string, held time.Duration) {
	switch {
	case held >= goRootHold && tab == TabFiles:
		if !library.IsRoot(dir) {
			l.changeDir(library.Root, "")
		}
	case held >= goRootHold:
		l.deps.Nav.GoHome()
	case tab == TabFiles && !library.IsRoot(dir):
		l.changeDir(library.Parent(dir), path.Base(dir))
	default:
		l.deps.Nav.GoHome()
	}
}

func (l *Library) confirm() {
	l.mu.RLock()
	tab, dir, selected := l.tab, l.dir, l.selected
	var entry library.Entry
	var bookPath string
	ok := false
	if tab == TabRecent && selected < len(l.recent) {
		bookPath, ok = l.recent[selected].Path, true
	} else if tab == TabFiles && selected < len(l.files) {
		entry, ok = l.files[selected], true
	}
	l.mu.RUnlock()

	switch {
	case !ok:
		return
	case tab == TabRecent:
		l.deps.Nav.OpenBook(bookPath)
	case entry.IsDir:
		l.changeDir(library.Join(dir, entry.Name), "")
	default:
		l.deps.Nav.OpenBook(library.Join(dir, entry.Name))
	}
}

// changeDir lists dir and selects the entry called selectName, or the first entry.
func (l *Library) changeDir(dir, selectName string) {
	files := l.list(dir)
	selected := 0
	if selectName != "" {
		if i := library.IndexOf(files, selectName); i >= 0 {
			selected = i
		}
	}
	l.mu.Lock()
	l.dir = dir
	l.files = files
	l.selected = selected
	l.mu.Unlock()
	l.task.RequestRender()
}

func (l *Library) move(forward, page bool) {
	l.mu.Lock()
	count := len(l.recent)
	if l.tab == TabFiles {
		count = len(l.files)
	}
	if count == 0 {
		l.mu.Unlock()
		return
	}
	switch {
	case page:
		l.selected = activity.PageStep(l.selected, l.pageRows, count, forward)
	case forward:
		l.selected = activity.Step(l.selected, 1, count)
	default:
		l.selected = activity.Step(l.selected, -1, count)
	}
	l.mu.Unlock()
	l.task.RequestRender()
}

func libraryLayout(bounds image.Rectangle) (header, tabs, list, hints image.Rectangle) {
	header, body, hints := frame(bounds)
	tabs, list = layout.SplitTop(body, render.TabBarHeight)
	return header, tabs, list, hints
}

// hints labels the front buttons. Left/Right move the selection and the side buttons
// switch tabs.
func (l *Library) hints(tab LibraryTab, dir string) [4]string {
	back := "Home"
	if tab == TabFiles && !library.IsRoot(dir) {
		back = "Back"
	}
	return l.deps.labels(back, "Open", "Up", "Down")
}

func (l *Library) render(phase activity.Phase) {
	l.mu.RLock()
	tab, dir, selected := l.tab, l.dir, l.selected
	files, recent := l.files, l.recent
	l.mu.RUnlock()

	c := l.canvas
	header, tabsArea, listArea, hintsArea := libraryLayout(c.Bounds())
	c.Clear()
	title := "SD card"
	if !library.IsRoot(dir) {
		title = path.Base(dir)
	}
	c.DrawHeader(header, title)
	c.DrawTabBar(tabsArea, libraryTabs, int(tab))

	switch {
	case phase != activity.PhaseReady:
		c.DrawEmptyState(listArea, "Loading...")
	case tab == TabRecent && len(recent) == 0:
		c.DrawEmptyState(listArea, "No recent books")
	case tab == TabRecent:
		c.DrawList(listArea, len(recent), selected, func(i int) render.ListRow {
			return render.ListRow{Title: recent[i].Title, Subtitle: recent[i].Author}
		})
	case len(files) == 0:
		c.DrawEmptyState(listArea, "No books found")
	default:
		c.DrawList(listArea, len(files), selected, func(i int) render.ListRow {
			return render.ListRow{Title: library.DisplayName(files[i])}
		})
	}

	c.DrawButtonHints(hintsArea, l.hints(tab, dir))
	c.DrawSideButtonHints(listArea, "^", "v")
	l.deps.push(l.Name(), c)
}
