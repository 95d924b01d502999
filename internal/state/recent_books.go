package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/shelf/internal/fsutil"
)

// MaxRecentBooks bounds the persisted recent list.
const MaxRecentBooks = 20

// RecentBook is one previously opened book as recorded by the reader.
type RecentBook struct {
	Path   string `yaml:"path"`
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
}

// RecentList is the read-only view the activities get.
type RecentList interface {
	Snapshot() []RecentBook
}

// RecentBooks is the most-recent-first list of opened books.
type RecentBooks struct {
	mu    sync.RWMutex
	books []RecentBook
}

func NewRecentBooks(books ...RecentBook) *RecentBooks {
	r := &RecentBooks{}
	for i := len(books) - 1; i >= 0; i-- {
		r.Add(books[i])
	}
	return r
}

func (r *RecentBooks) Snapshot() []RecentBook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneBooks(r.books)
}

// Add moves book to the front, replacing an older entry with the same path.
func (r *RecentBooks) Add(book RecentBook) {
	if book.Path == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecentBook, 0, len(r.books)+1)
	out = append(out, book)
	for _, existing := range r.books {
		if existing.Path == book.Path {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > MaxRecentBooks {
		out = out[:MaxRecentBooks]
	}
	r.books = out
}

func (r *RecentBooks) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.books[:0]
	for _, existing := range r.books {
		if existing.Path != path {
			out = append(out, existing)
		}
	}
	r.books = out
}

type recentFile struct {
	Books []RecentBook `yaml:"books"`
}

// LoadRecentBooks reads the list from a yaml file. A missing file yields an empty list.
func LoadRecentBooks(path string) (*RecentBooks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewRecentBooks(), nil
		}
		return nil, err
	}
	var file recentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewRecentBooks(file.Books...), nil
}

// Save writes the list atomically via a temp file + rename.
func (r *RecentBooks) Save(path string) error {
	data, err := yaml.Marshal(recentFile{Books: r.Snapshot()})
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

func cloneBooks(input []RecentBook) []RecentBook {
	if len(input) == 0 {
		return nil
	}
	out := make([]RecentBook, len(input))
	copy(out, input)
	return out
}
