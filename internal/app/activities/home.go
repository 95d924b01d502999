package activities

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/rook-computer/shelf/internal/activity"
	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/library"
	"github.com/rook-computer/shelf/internal/render"
	"github.com/rook-computer/shelf/internal/render/layout"
)

const (
	homeRecentCount = 3
	homeCoverHeight = 300
	homeThumbHeight = 220
)

type homeItem int

const (
	homeItemNone homeItem = iota
	homeItemBook
	homeItemFiles
	homeItemRecents
	homeItemOPDS
	homeItemFileTransfer
	homeItemSettings
)

type homeMenuEntry struct {
	label string
	item  homeItem
}

func homeMenu(opds bool) []homeMenuEntry {
	menu := []homeMenuEntry{
		{"Browse Files", homeItemFiles},
		{"Recents", homeItemRecents},
	}
	if opds {
		menu = append(menu, homeMenuEntry{"OPDS Browser", homeItemOPDS})
	}
	return append(menu,
		homeMenuEntry{"File Transfer", homeItemFileTransfer},
		homeMenuEntry{"Settings", homeItemSettings},
	)
}

func homeMenuCount(recentCount int, opds bool) int {
	return recentCount + len(homeMenu(opds))
}

// resolveHomeItem maps a selection index onto the recent tiles followed by the menu.
func resolveHomeItem(index, recentCount int, opds bool) homeItem {
	if index < 0 {
		return homeItemNone
	}
	if index < recentCount {
		return homeItemBook
	}
	menu := homeMenu(opds)
	if i := index - recentCount; i < len(menu) {
		return menu[i].item
	}
	return homeItemNone
}

// Home shows the books to continue reading above the main menu.
type Home struct {
	deps   Deps
	canvas *render.Canvas
	task   *activity.RenderTask

	// Owned by render passes.
	cover        render.CoverBuffer
	coverVersion int

	// Thumbnail generation progress for the loading popup.
	loadDone, loadTotal atomic.Int32

	mu       sync.RWMutex
	selected int
	books    []library.RecentBookInfo
	covers   []image.Image
	version  int
}

func NewHome(deps Deps) *Home {
	canvas := render.NewCanvas()
	canvas.Logger = deps.Logger
	return &Home{deps: deps, canvas: canvas}
}

func (h *Home) Name() string { return "home" }

func (h *Home) Enter(ctx context.Context) {
	h.mu.Lock()
	h.selected = 0
	h.books = nil
	h.covers = nil
	h.version++
	h.mu.Unlock()
	h.loadDone.Store(0)
	h.loadTotal.Store(0)

	h.task = newTask(h.Name(), h.deps, h.render, h.load)
	h.task.Start(ctx)
}

func (h *Home) Exit() {
	if h.task != nil {
		h.task.Stop()
	}
	h.cover.Free()
}

func (h *Home) Update() {
	in := h.deps.Input
	opds := h.deps.opdsEnabled()

	h.mu.Lock()
	recentCount := len(h.books)
	count := homeMenuCount(recentCount, opds)
	// The OPDS entry can disappear between frames.
	h.selected = activity.Clamp(h.selected, count)
	switch {
	case in.WasReleased(buttons.Confirm):
		item := resolveHomeItem(h.selected, recentCount, opds)
		var bookPath string
		if item == homeItemBook {
			bookPath = h.books[h.selected].Path
		}
		h.mu.Unlock()
		h.activate(item, bookPath)
		return
	case in.WasPressed(buttons.Up) || in.WasPressed(buttons.Left):
		h.selected = activity.Step(h.selected, -1, count)
	case in.WasPressed(buttons.Down) || in.WasPressed(buttons.Right):
		h.selected = activity.Step(h.selected, 1, count)
	default:
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	h.task.RequestRender()
}

func (h *Home) activate(item homeItem, bookPath string) {
	nav := h.deps.Nav
	switch item {
	case homeItemBook:
		nav.OpenBook(bookPath)
	case homeItemFiles:
		nav.OpenLibrary(TabFiles, library.Root)
	case homeItemRecents:
		nav.OpenLibrary(TabRecent, library.Root)
	case homeItemOPDS:
		nav.OpenOPDS()
	case homeItemFileTransfer:
		nav.OpenFileTransfer()
	case homeItemSettings:
		nav.OpenSettings()
	}
}

func (h *Home) load(ctx context.Context) {
	infos, err := library.LoadRecentBooks(ctx, library.RecentOptions{
		Storage:     h.deps.Storage,
		Recent:      h.deps.Recent,
		Parsers:     h.deps.Parsers,
		Limit:       homeRecentCount,
		ThumbHeight: homeThumbHeight,
		Progress: func(done, total int) {
			h.loadDone.Store(int32(done))
			h.loadTotal.Store(int32(total))
			h.task.RequestRender()
		},
		Logger: h.deps.Logger,
	})
	if err != nil {
		return
	}
	covers := make([]image.Image, len(infos))
	for i, info := range infos {
		if info.CoverPath == "" {
			continue
		}
		img, err := imaging.Open(info.CoverPath)
		if err != nil {
			h.deps.errorf("home: cover %s: %v", info.CoverPath, err)
			continue
		}
		covers[i] = img
	}
	h.deps.logf("home: %d recent books loaded", len(infos))

	opds := h.deps.opdsEnabled()
	h.mu.Lock()
	h.books = infos
	h.covers = covers
	h.version++
	h.selected = activity.Clamp(h.selected, homeMenuCount(len(infos), opds))
	h.mu.Unlock()
}

func homeLayout(bounds image.Rectangle) (header, covers, menu, hints image.Rectangle) {
	header, body, hints := frame(bounds)
	covers, menu = layout.SplitTop(body, homeCoverHeight)
	_, menu = layout.SplitTop(menu, render.Margin)
	return header, covers, menu, hints
}

func homeTiles(covers image.Rectangle) []image.Rectangle {
	return layout.Columns(layout.Inset(covers, render.Margin), homeRecentCount, render.Margin)
}

func (h *Home) loadProgress() float64 {
	total := h.loadTotal.Load()
	if total <= 0 {
		return 0
	}
	return float64(h.loadDone.Load()) / float64(total)
}

func (h *Home) render(phase activity.Phase) {
	h.mu.RLock()
	selected := h.selected
	books := h.books
	covers := h.covers
	version := h.version
	h.mu.RUnlock()

	c := h.canvas
	header, coverArea, menuArea, hintsArea := homeLayout(c.Bounds())
	tiles := homeTiles(coverArea)

	restored := phase == activity.PhaseReady && h.coverVersion == version && h.cover.Restore(c)
	if !restored {
		h.cover.Free()
		c.Clear()
		c.DrawHeader(header, "Home")
		switch {
		case phase != activity.PhaseReady:
			for _, tile := range tiles {
				c.DrawCoverPlaceholder(tile)
			}
			if phase == activity.PhaseLoading {
				c.DrawPopup(coverArea, "Loading...", h.loadProgress())
			}
		case len(books) == 0:
			c.DrawEmptyState(coverArea, "No recent books")
		default:
			for i, book := range books {
				c.DrawCoverCard(tiles[i], covers[i], book.Title, book.Author)
			}
		}
		if phase == activity.PhaseReady && h.cover.Store(c) {
			h.coverVersion = version
			h.deps.logf("home: covers drawn for %d books", len(books))
		}
	}

	if selected < len(books) {
		c.DrawSelectionFrame(tiles[selected])
	}
	menu := homeMenu(h.deps.opdsEnabled())
	labels := make([]string, len(menu))
	for i, entry := range menu {
		labels[i] = entry.label
	}
	c.DrawButtonMenu(menuArea, labels, selected-len(books))
	c.DrawButtonHints(hintsArea, h.deps.labels("", "Select", "Up", "Down"))
	h.deps.push(h.Name(), c)
}
