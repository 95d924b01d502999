// Package books reads the little the shell needs from book files: a title, an author and
// a cover thumbnail.
package books

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoCover is returned by Thumbnail when a book has no usable cover image.
var ErrNoCover = errors.New("book has no cover")

type Metadata struct {
	Title  string
	Author string
}

// Parser extracts metadata and cover thumbnails from one book format.
type Parser interface {
	// Metadata returns what the file itself records; fields are empty when it has none.
	Metadata(path string) (Metadata, error)
	// Thumbnail materializes a cover bitmap of the given height and returns its path.
	Thumbnail(path string, height int) (string, error)
}

// Registry picks a parser by file extension.
type Registry struct {
	byExt    map[string]Parser
	fallback Parser
}

// NewRegistry wires the built-in formats; thumbnails are cached under cacheDir.
func NewRegistry(cacheDir string) *Registry {
	epub := &EpubParser{Cache: ThumbnailCache{Dir: cacheDir}}
	xtc := &XtcParser{Cache: ThumbnailCache{Dir: cacheDir}}
	text := TextParser{}
	return &Registry{
		byExt: map[string]Parser{
			".epub": epub,
			".xtc":  xtc,
			".xtch": xtc,
			".txt":  text,
			".md":   text,
		},
		fallback: text,
	}
}

// Register adds or replaces the parser for ext (with leading dot).
func (r *Registry) Register(ext string, p Parser) {
	if r.byExt == nil {
		r.byExt = make(map[string]Parser)
	}
	r.byExt[strings.ToLower(ext)] = p
}

// ForPath returns the parser for the file's extension, or a filename-only parser.
func (r *Registry) ForPath(p string) Parser {
	if parser, ok := r.byExt[strings.ToLower(filepath.Ext(p))]; ok {
		return parser
	}
	if r.fallback != nil {
		return r.fallback
	}
	return TextParser{}
}

// TitleFromPath derives a display title from a file name.
func TitleFromPath(p string) string {
	base := path.Base(filepath.ToSlash(p))
	if base == "/" || base == "." {
		return ""
	}
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// TextParser handles formats without embedded metadata.
type TextParser struct{}

func (TextParser) Metadata(string) (Metadata, error) {
	return Metadata{}, nil
}

func (TextParser) Thumbnail(string, int) (string, error) { return "", ErrNoCover }
