package library

import (
	"path"
	"sort"
	"strings"
)

// Root is the storage root path.
const Root = "/"

var bookExtensions = map[string]bool{
	".epub": true,
	".xtc":  true,
	".xtch": true,
	".txt":  true,
	".md":   true,
}

var hiddenNames = map[string]bool{
	"System Volume Information": true,
}

// IsBookFile reports whether name has one of the supported book extensions.
func IsBookFile(name string) bool {
	return bookExtensions[strings.ToLower(path.Ext(name))]
}

func visible(e Entry) bool {
	if e.Name == "" || strings.HasPrefix(e.Name, ".") || hiddenNames[e.Name] {
		return false
	}
	return e.IsDir || IsBookFile(e.Name)
}

// List reads dir and returns the entries the Files tab shows: directories first, then
// books, each group in case-insensitive name order.
func List(s Storage, dir string) ([]Entry, error) {
	raw, err := s.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if visible(e) {
			entries = append(entries, e)
		}
	}
	Sort(entries)
	return entries, nil
}

// Sort orders entries the way List returns them.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// IndexOf returns the position of the entry called name, or -1.
func IndexOf(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// DisplayName is the list label of e; directories get a trailing slash.
func DisplayName(e Entry) string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// Parent returns the directory containing p. The parent of the root is the root.
func Parent(p string) string {
	return path.Dir(path.Clean("/" + p))
}

func Join(dir, name string) string {
	return path.Join("/", dir, name)
}

// IsRoot reports whether p names the storage root.
func IsRoot(p string) bool {
	return path.Clean("/"+p) == Root
}
