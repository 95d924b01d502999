package books

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// ThumbnailCache stores generated cover bitmaps, one directory per book.
type ThumbnailCache struct {
	Dir string
}

// PathFor is where the thumbnail of book at the given height lives.
func (c ThumbnailCache) PathFor(book string, height int) string {
	sum := sha256.Sum256([]byte(book))
	key := hex.EncodeToString(sum[:8])
	return filepath.Join(c.Dir, key, fmt.Sprintf("thumb_%d.bmp", height))
}

// Get returns the cached thumbnail path, generating it from open when missing.
// open is only called on a cache miss.
func (c ThumbnailCache) Get(book string, height int, open func() (io.ReadCloser, error)) (string, error) {
	if height <= 0 {
		return "", fmt.Errorf("invalid thumbnail height %d", height)
	}
	out := c.PathFor(book, height)
	if _, err := os.Stat(out); err == nil {
		return out, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	rc, err := open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	src, _, err := image.Decode(rc)
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}
	thumb := imaging.Grayscale(imaging.Resize(src, 0, height, imaging.Lanczos))

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	tmp := out + ".tmp.bmp"
	if err := imaging.Save(thumb, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return out, nil
}
