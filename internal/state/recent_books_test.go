package state

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestRecentBooksAddMovesToFront(t *testing.T) {
	r := NewRecentBooks()
	r.Add(RecentBook{Path: "/a.epub"})
	r.Add(RecentBook{Path: "/b.epub"})
	r.Add(RecentBook{Path: "/a.epub", Title: "A"})

	got := r.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 books, got %d", len(got))
	}
	if got[0].Path != "/a.epub" || got[0].Title != "A" || got[1].Path != "/b.epub" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestRecentBooksCapacity(t *testing.T) {
	r := NewRecentBooks()
	for i := 0; i < MaxRecentBooks+5; i++ {
		r.Add(RecentBook{Path: fmt.Sprintf("/%d.epub", i)})
	}
	got := r.Snapshot()
	if len(got) != MaxRecentBooks {
		t.Fatalf("expected %d books, got %d", MaxRecentBooks, len(got))
	}
	if got[0].Path != fmt.Sprintf("/%d.epub", MaxRecentBooks+4) {
		t.Fatalf("expected newest first, got %s", got[0].Path)
	}
}

func TestRecentBooksSnapshotIsCopy(t *testing.T) {
	r := NewRecentBooks(RecentBook{Path: "/a.epub"})
	snap := r.Snapshot()
	snap[0].Path = "/changed"
	if r.Snapshot()[0].Path != "/a.epub" {
		t.Fatalf("snapshot must not alias the store")
	}
}

func TestRecentBooksRemove(t *testing.T) {
	r := NewRecentBooks(RecentBook{Path: "/a"}, RecentBook{Path: "/b"}, RecentBook{Path: "/c"})
	r.Remove("/b")
	got := r.Snapshot()
	if len(got) != 2 || got[0].Path != "/a" || got[1].Path != "/c" {
		t.Fatalf("unexpected list after remove %+v", got)
	}
}

func TestRecentBooksSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "recent.yaml")
	r := NewRecentBooks(
		RecentBook{Path: "/books/a.epub", Title: "A", Author: "Ann"},
		RecentBook{Path: "/books/b.txt"},
	)
	if err := r.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadRecentBooks(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := loaded.Snapshot()
	if len(got) != 2 || got[0] != (RecentBook{Path: "/books/a.epub", Title: "A", Author: "Ann"}) || got[1].Path != "/books/b.txt" {
		t.Fatalf("unexpected loaded list %+v", got)
	}
}

func TestLoadRecentBooksMissingFile(t *testing.T) {
	r, err := LoadRecentBooks(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(r.Snapshot()) != 0 {
		t.Fatalf("expected empty list")
	}
}
