package app

import (
	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/state"
)

// RecordRecent returns a BookOpener that moves the opened book to the front of recent,
// saves the list to file (when set) and goes back to Home so the covers refresh.
func (app *App) RecordRecent(recent *state.RecentBooks, file string) func(path string) {
	return func(path string) {
		book := state.RecentBook{Path: path, Title: books.TitleFromPath(path)}
		if app.Parsers != nil && app.Storage != nil {
			host := app.Storage.Resolve(path)
			meta, err := app.Parsers.ForPath(host).Metadata(host)
			if err != nil {
				app.Logger.Errorf("books", "metadata for %s: %v", path, err)
			}
			if meta.Title != "" {
				book.Title = meta.Title
			}
			book.Author = meta.Author
		}
		recent.Add(book)
		if file != "" {
			if err := recent.Save(file); err != nil {
				app.Logger.Errorf("app", "save recent books: %v", err)
			}
		}
		app.GoHome()
	}
}
