package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Display is the physical output a composed frame is pushed to.
type Display interface {
	Bounds() image.Rectangle
	Push(frame *image.Gray) error
	Close() error
}

type NoopDisplay struct{}

func (NoopDisplay) Bounds() image.Rectangle { return image.Rect(0, 0, CanvasWidth, CanvasHeight) }
func (NoopDisplay) Push(*image.Gray) error  { return nil }
func (NoopDisplay) Close() error            { return nil }

// MemoryDisplay keeps a copy of the most recent frame.
// It backs the simulator and the activity tests.
type MemoryDisplay struct {
	// OnPush, when set, is called after every push outside the display lock.
	OnPush func()

	mu     sync.Mutex
	frame  *image.Gray
	pushes int
}

func NewMemoryDisplay() *MemoryDisplay { return &MemoryDisplay{} }

func (d *MemoryDisplay) Bounds() image.Rectangle {
	return image.Rect(0, 0, CanvasWidth, CanvasHeight)
}

func (d *MemoryDisplay) Push(frame *image.Gray) error {
	if frame == nil {
		return nil
	}
	d.mu.Lock()
	if d.frame == nil || d.frame.Bounds() != frame.Bounds() {
		d.frame = image.NewGray(frame.Bounds())
	}
	copy(d.frame.Pix, frame.Pix)
	d.pushes++
	hook := d.OnPush
	d.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (d *MemoryDisplay) Close() error { return nil }

// Frame returns a copy of the last pushed frame, or nil before the first push.
func (d *MemoryDisplay) Frame() *image.Gray {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return nil
	}
	out := image.NewGray(d.frame.Bounds())
	copy(out.Pix, d.frame.Pix)
	return out
}

// Pushes reports how many frames were pushed so far.
func (d *MemoryDisplay) Pushes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pushes
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type FontSize int

const (
	FontRegular FontSize = iota
	FontSmall
	FontTitle
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  FontSize
	Bold  bool
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

func fill(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
