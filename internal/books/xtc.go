package books

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

var sidecarExts = []string{".jpg", ".jpeg", ".png", ".bmp"}

// XtcParser handles pre-rendered XTC/XTCH page containers. Their page data is not read
// here; covers come from a sidecar image next to the book.
type XtcParser struct {
	Cache ThumbnailCache
}

func (p *XtcParser) Metadata(bookPath string) (Metadata, error) {
	if _, err := os.Stat(bookPath); err != nil {
		return Metadata{}, err
	}
	return Metadata{}, nil
}

func (p *XtcParser) Thumbnail(bookPath string, height int) (string, error) {
	sidecar := findSidecar(bookPath)
	if sidecar == "" {
		return "", ErrNoCover
	}
	return p.Cache.Get(bookPath, height, func() (io.ReadCloser, error) {
		return os.Open(sidecar)
	})
}

func findSidecar(bookPath string) string {
	ext := filepath.Ext(bookPath)
	if ext == "" {
		return ""
	}
	stem := strings.TrimSuffix(bookPath, ext)
	for _, ext := range sidecarExts {
		for _, candidate := range []string{stem + ext, stem + strings.ToUpper(ext)} {
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				return candidate
			}
		}
	}
	return ""
}
