package library

import (
	"context"
	"errors"

	"github.com/rook-computer/shelf/internal/books"
	"github.com/rook-computer/shelf/internal/state"
)

// RecentBookInfo is a recent book ready for display.
type RecentBookInfo struct {
	Path      string
	Title     string
	Author    string
	CoverPath string
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// RecentOptions configures LoadRecentBooks.
type RecentOptions struct {
	Storage Storage
	Recent  state.RecentList
	Parsers *books.Registry
	// Limit caps the number of loaded books; zero means no limit.
	Limit int
	// ThumbHeight requests cover thumbnails of this height; zero skips covers.
	ThumbHeight int
	// Progress, when set, is called after each recent entry is resolved or skipped.
	Progress func(done, total int)
	Logger   Logger
}

// LoadRecentBooks resolves the recent list into displayable entries, most recent first.
// Books that no longer exist are skipped. Metadata and cover failures only degrade the
// entry. The returned error is non-nil only when ctx was cancelled.
func LoadRecentBooks(ctx context.Context, opts RecentOptions) ([]RecentBookInfo, error) {
	if opts.Recent == nil || opts.Storage == nil {
		return nil, nil
	}
	var out []RecentBookInfo
	entries := opts.Recent.Snapshot()
	progress := func(done int) {
		if opts.Progress != nil {
			opts.Progress(done, len(entries))
		}
	}
	for i, rb := range entries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		if !opts.Storage.Exists(rb.Path) {
			progress(i + 1)
			continue
		}
		info := RecentBookInfo{Path: rb.Path, Title: rb.Title, Author: rb.Author}
		if opts.Parsers != nil {
			info = describe(opts, info)
		}
		if info.Title == "" {
			info.Title = books.TitleFromPath(rb.Path)
		}
		out = append(out, info)
		progress(i + 1)
	}
	progress(len(entries))
	return out, nil
}

func describe(opts RecentOptions, info RecentBookInfo) RecentBookInfo {
	host := opts.Storage.Resolve(info.Path)
	parser := opts.Parsers.ForPath(host)
	meta, err := parser.Metadata(host)
	if err != nil {
		logErr(opts.Logger, "metadata for %s: %v", info.Path, err)
	} else {
		if meta.Title != "" {
			info.Title = meta.Title
		}
		if meta.Author != "" {
			info.Author = meta.Author
		}
	}
	if opts.ThumbHeight > 0 {
		cover, err := parser.Thumbnail(host, opts.ThumbHeight)
		switch {
		case err == nil:
			info.CoverPath = cover
		case errors.Is(err, books.ErrNoCover):
		default:
			logErr(opts.Logger, "thumbnail for %s: %v", info.Path, err)
		}
	}
	return info
}

func logErr(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Errorf("library", format, args...)
	}
}
