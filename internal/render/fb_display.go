package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	fb "github.com/gonutz/framebuffer"
)

// Logger is the component logger displays and canvases report through.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// device is what the display needs from an opened framebuffer.
type device interface {
	draw.Image
	Close()
}

// FramebufferDisplay pushes frames to a Linux framebuffer device.
type FramebufferDisplay struct {
	mu    sync.Mutex
	dev   device
	bound image.Rectangle

	Logger Logger
}

func OpenFramebuffer(path string, logger Logger) (*FramebufferDisplay, error) {
	if path == "" {
		path = "/dev/fb0"
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	return newFramebufferDisplay(dev, logger), nil
}

func newFramebufferDisplay(dev device, logger Logger) *FramebufferDisplay {
	return &FramebufferDisplay{dev: dev, bound: dev.Bounds(), Logger: logger}
}

func (d *FramebufferDisplay) Bounds() image.Rectangle { return d.bound }

// Push blits frame to the device via nearest-neighbor scaling.
func (d *FramebufferDisplay) Push(frame *image.Gray) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return fmt.Errorf("framebuffer closed")
	}
	if frame == nil {
		return nil
	}
	src := frame.Bounds()
	fbWidth := d.bound.Dx()
	fbHeight := d.bound.Dy()
	for y := 0; y < fbHeight; y++ {
		sy := src.Min.Y + (y*src.Dy())/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := src.Min.X + (x*src.Dx())/fbWidth
			v := frame.GrayAt(sx, sy).Y
			d.dev.Set(d.bound.Min.X+x, d.bound.Min.Y+y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
	if d.Logger != nil {
		d.Logger.Infof("fb", "frame pushed, bounds=%dx%d", fbWidth, fbHeight)
	}
	return nil
}

func (d *FramebufferDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return nil
	}
	d.dev.Close()
	d.dev = nil
	return nil
}
