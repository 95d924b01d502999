package books

import (
	"archive/zip"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

const testContainer = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`

const testOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>The Test Book</dc:title>
    <dc:creator>Ann Author</dc:creator>
    <meta name="cover" content="cover-img"/>
  </metadata>
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="cover-img" href="images/cover%20art.png" media-type="image/png"/>
  </manifest>
</package>`

const testOPFNoCover = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title> </dc:title></metadata>
  <manifest><item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/></manifest>
</package>`

func writeEpub(t *testing.T, dir, name, opf string, withCover bool) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	add := func(name string, data []byte) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	add("mimetype", []byte("application/epub+zip"))
	add(containerPath, []byte(testContainer))
	add("OEBPS/content.opf", []byte(opf))
	if withCover {
		w, err := zw.Create("OEBPS/images/cover art.png")
		if err != nil {
			t.Fatal(err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 60, 90))
		for y := 0; y < 90; y++ {
			for x := 0; x < 60; x++ {
				img.Set(x, y, color.RGBA{R: uint8(x * 4), G: 0x40, B: uint8(y * 2), A: 0xFF})
			}
		}
		if err := png.Encode(w, img); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEpubMetadata(t *testing.T) {
	dir := t.TempDir()
	book := writeEpub(t, dir, "book.epub", testOPF, true)
	meta, err := (&EpubParser{}).Metadata(book)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Title != "The Test Book" || meta.Author != "Ann Author" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}

func TestEpubMetadataBlankTitle(t *testing.T) {
	book := writeEpub(t, t.TempDir(), "Fallback Title.epub", testOPFNoCover, false)
	meta, err := (&EpubParser{}).Metadata(book)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("expected no title, got %q", meta.Title)
	}
}

func TestEpubMetadataRejectsGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.epub")
	if err := os.WriteFile(p, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&EpubParser{}).Metadata(p); err == nil {
		t.Fatalf("expected error for a non-zip file")
	}
}

func TestEpubThumbnailCached(t *testing.T) {
	dir := t.TempDir()
	book := writeEpub(t, dir, "book.epub", testOPF, true)
	parser := &EpubParser{Cache: ThumbnailCache{Dir: filepath.Join(dir, "cache")}}

	thumb, err := parser.Thumbnail(book, 45)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	img, err := imaging.Open(thumb)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	if img.Bounds().Dy() != 45 || img.Bounds().Dx() != 30 {
		t.Fatalf("unexpected thumbnail size %v", img.Bounds())
	}

	// A cache hit must not touch the book again.
	if err := os.Remove(book); err != nil {
		t.Fatal(err)
	}
	again, err := parser.Thumbnail(book, 45)
	if err != nil || again != thumb {
		t.Fatalf("expected cached thumbnail, got %q, %v", again, err)
	}
}

func TestEpubThumbnailWithoutCover(t *testing.T) {
	dir := t.TempDir()
	book := writeEpub(t, dir, "book.epub", testOPFNoCover, false)
	parser := &EpubParser{Cache: ThumbnailCache{Dir: filepath.Join(dir, "cache")}}
	if _, err := parser.Thumbnail(book, 45); !errors.Is(err, ErrNoCover) {
		t.Fatalf("expected ErrNoCover, got %v", err)
	}
}

func TestXtcSidecarCover(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "comic.xtc")
	if err := os.WriteFile(book, []byte("XTC"), 0o644); err != nil {
		t.Fatal(err)
	}
	parser := &XtcParser{Cache: ThumbnailCache{Dir: filepath.Join(dir, "cache")}}
	if _, err := parser.Thumbnail(book, 20); !errors.Is(err, ErrNoCover) {
		t.Fatalf("expected ErrNoCover without sidecar, got %v", err)
	}

	cover := imaging.New(40, 80, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	if err := imaging.Save(cover, filepath.Join(dir, "comic.png")); err != nil {
		t.Fatal(err)
	}
	thumb, err := parser.Thumbnail(book, 20)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	img, err := imaging.Open(thumb)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected height %d", img.Bounds().Dy())
	}

	meta, err := parser.Metadata(book)
	if err != nil || meta.Title != "" {
		t.Fatalf("unexpected metadata %+v %v", meta, err)
	}
}

func TestRegistryForPath(t *testing.T) {
	r := NewRegistry(t.TempDir())
	if _, ok := r.ForPath("/a/B.EPUB").(*EpubParser); !ok {
		t.Fatalf("expected epub parser for upper-case extension")
	}
	if _, ok := r.ForPath("/a/b.xtch").(*XtcParser); !ok {
		t.Fatalf("expected xtc parser")
	}
	if _, ok := r.ForPath("/a/b.unknown").(TextParser); !ok {
		t.Fatalf("expected fallback parser")
	}
}

func TestTitleFromPath(t *testing.T) {
	cases := map[string]string{
		"/books/Moby Dick.epub": "Moby Dick",
		"notes.txt":             "notes",
		"/books/.hidden":        ".hidden",
		"/books/archive.tar.gz": "archive.tar",
		"/":                     "",
	}
	for in, want := range cases {
		if got := TitleFromPath(in); got != want {
			t.Errorf("TitleFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
