package library

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// ErrNotDirectory is returned by ReadDir for paths that are not directories.
var ErrNotDirectory = errors.New("not a directory")

// Entry is one raw directory entry.
type Entry struct {
	Name  string
	IsDir bool
}

// Storage is the book storage as seen by the activities. Paths are slash separated and
// rooted at "/".
type Storage interface {
	Exists(p string) bool
	ReadDir(dir string) ([]Entry, error)
	// Resolve returns the host path the book parsers can open.
	Resolve(p string) string
}

// OSStorage serves a directory of the local filesystem as the storage root.
type OSStorage struct {
	Root string
}

func (s OSStorage) Resolve(p string) string {
	clean := path.Clean("/" + filepath.ToSlash(p))
	return filepath.Join(s.Root, filepath.FromSlash(clean))
}

func (s OSStorage) Exists(p string) bool {
	_, err := os.Stat(s.Resolve(p))
	return err == nil
}

func (s OSStorage) ReadDir(dir string) ([]Entry, error) {
	full := s.Resolve(dir)
	info, err := os.Stat(full)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read dir %s: %w", dir, ErrNotDirectory)
	}
	dirents, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(full, d.Name())); err == nil {
				isDir = target.IsDir()
			}
		}
		entries = append(entries, Entry{Name: d.Name(), IsDir: isDir})
	}
	return entries, nil
}
