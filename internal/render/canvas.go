package render

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/shelf/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Point sizes per FontSize at 72 DPI, i.e. roughly pixels.
var fontPoints = map[FontSize]float64{
	FontSmall:   16,
	FontRegular: 22,
	FontTitle:   30,
}

type faceKey struct {
	size FontSize
	bold bool
}

// Canvas is the offscreen grayscale frame all activities compose into.
// It is not safe for concurrent use; activities draw into it under their render mutex.
type Canvas struct {
	img   *image.Gray
	faces map[faceKey]font.Face

	Logger Logger
}

// NewCanvas allocates a CanvasWidth x CanvasHeight frame and loads the Go fonts.
func NewCanvas() *Canvas {
	return NewCanvasSize(CanvasWidth, CanvasHeight)
}

func NewCanvasSize(width, height int) *Canvas {
	c := &Canvas{
		img:   image.NewGray(image.Rect(0, 0, width, height)),
		faces: make(map[faceKey]font.Face),
	}
	c.loadFaces()
	c.Clear()
	return c
}

func (c *Canvas) loadFaces() {
	regular, rerr := truetype.Parse(goregular.TTF)
	bold, berr := truetype.Parse(gobold.TTF)
	for size, points := range fontPoints {
		opts := &truetype.Options{Size: points, DPI: 72, Hinting: font.HintingFull}
		if rerr == nil {
			c.faces[faceKey{size: size}] = truetype.NewFace(regular, opts)
		}
		if berr == nil {
			c.faces[faceKey{size: size, bold: true}] = truetype.NewFace(bold, opts)
		}
	}
	if rerr != nil {
		c.logError("truetype parse failed, using basicfont: %v", rerr)
	}
	if berr != nil {
		c.logError("truetype bold parse failed: %v", berr)
	}
}

func (c *Canvas) face(style TextStyle) font.Face {
	if f, ok := c.faces[faceKey{size: style.Size, bold: style.Bold}]; ok {
		return f
	}
	if f, ok := c.faces[faceKey{size: style.Size}]; ok {
		return f
	}
	return basicfont.Face7x13
}

// Size returns the logical canvas size in pixels.
func (c *Canvas) Size() (width int, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image exposes the frame for pushing to a display.
func (c *Canvas) Image() *image.Gray {
	if c == nil {
		return nil
	}
	return c.img
}

// Buffer returns the raw frame bytes, or nil when no frame is allocated.
func (c *Canvas) Buffer() []byte {
	if c == nil || c.img == nil {
		return nil
	}
	return c.img.Pix
}

func (c *Canvas) Clear() {
	fill(c.img, c.img.Bounds(), White)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	fill(c.img, rect.Intersect(c.img.Bounds()), col)
}

// StrokeRect draws a border of widthPx inside rect.
func (c *Canvas) StrokeRect(rect image.Rectangle, widthPx int, col color.Color) {
	if rect.Empty() || widthPx <= 0 {
		return
	}
	if widthPx*2 >= rect.Dx() || widthPx*2 >= rect.Dy() {
		c.FillRect(rect, col)
		return
	}
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+widthPx), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Max.Y-widthPx, rect.Max.X, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+widthPx, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Max.X-widthPx, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style)
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      width,
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

// DrawText draws a single line with its top edge at y.
func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := c.MeasureText(text, style)
	if text == "" {
		return m
	}
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	col := style.Color
	if col == nil {
		col = Black
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face(style),
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

// DrawTextInRect draws text vertically centered in rect, clipped to its width.
func (c *Canvas) DrawTextInRect(text string, rect image.Rectangle, style TextStyle) {
	text = c.Truncate(text, rect.Dx(), style)
	m := c.MeasureText(text, style)
	y := rect.Min.Y + (rect.Dy()-m.Height)/2
	x := rect.Min.X
	switch style.Align {
	case TextAlignCenter:
		x = rect.Min.X + rect.Dx()/2
	case TextAlignRight:
		x = rect.Max.X
	}
	c.DrawText(text, x, y, style)
}

const ellipsis = "..."

// Truncate shortens text until it fits into maxWidth pixels, appending an ellipsis.
func (c *Canvas) Truncate(text string, maxWidth int, style TextStyle) string {
	if maxWidth <= 0 {
		return ""
	}
	if c.MeasureText(text, style).Width <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if c.MeasureText(candidate, style).Width <= maxWidth {
			return candidate
		}
	}
	return ""
}

// DrawImageInRect scales img to fit rect keeping its aspect ratio.
func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle) image.Rectangle {
	if img == nil {
		return image.Rectangle{}
	}
	b := img.Bounds()
	target := layout.FitAspect(rect, b.Dx(), b.Dy())
	if target.Empty() {
		return target
	}
	xdraw.CatmullRom.Scale(c.img, target, img, b, xdraw.Src, nil)
	return target
}

func (c *Canvas) logError(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("render", format, args...)
	}
}
