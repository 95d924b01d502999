//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rook-computer/shelf/internal/buttons"
	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEsc       = 1
	keyBackspace = 14
	keyEnter     = 28
	keyUp        = 103
	keyPageUp    = 104
	keyLeft      = 105
	keyRight     = 106
	keyDown      = 108
	keyPageDown  = 109
	keyBack      = 158
	keySelect    = 0x161
)

// DefaultKeymap maps evdev key codes to logical buttons. Side rockers usually report
// page up/down; keyboards work through the arrow keys.
var DefaultKeymap = map[uint16]buttons.Button{
	keyEsc:       buttons.Back,
	keyBackspace: buttons.Back,
	keyBack:      buttons.Back,
	keyEnter:     buttons.Confirm,
	keySelect:    buttons.Confirm,
	keyLeft:      buttons.Left,
	keyRight:     buttons.Right,
	keyUp:        buttons.Up,
	keyPageUp:    buttons.Up,
	keyDown:      buttons.Down,
	keyPageDown:  buttons.Down,
}

// EvdevSource reads key events from /dev/input/event* devices.
type EvdevSource struct {
	// Glob selects the devices to read; defaults to /dev/input/event*.
	Glob   string
	Keymap map[uint16]buttons.Button
	Logger logger

	events chan buttons.Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevSource(glob string, l logger) *EvdevSource {
	return &EvdevSource{Glob: glob, Keymap: DefaultKeymap, Logger: l, events: make(chan buttons.Event, 64)}
}

func (s *EvdevSource) Events() <-chan buttons.Event { return s.events }

// Start opens every matching device and forwards mapped key events.
// It is best-effort: if no input devices are available, it logs and returns nil.
func (s *EvdevSource) Start(ctx context.Context) error {
	glob := s.Glob
	if glob == "" {
		glob = "/dev/input/event*"
	}
	paths, err := filepath.Glob(glob)
	if err != nil || len(paths) == 0 {
		if s.Logger != nil {
			s.Logger.Infof("input", "no evdev devices match %s", glob)
		}
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, path := range paths {
		s.wg.Add(1)
		go func(p string) {
			defer s.wg.Done()
			s.readDevice(readCtx, p)
		}(path)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

func (s *EvdevSource) readDevice(ctx context.Context, path string) {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4
	if eventSize <= 0 {
		eventSize = 24
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("input", "open %s: %v", path, err)
		}
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()
	if s.Logger != nil {
		s.Logger.Infof("input", "reading %s", path)
	}

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		_, pollErr := unix.Poll(pollFds, 250)
		if pollErr != nil {
			if pollErr == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey || value == 2 { // 2 is autorepeat
				continue
			}
			button, ok := s.Keymap[code]
			if !ok {
				continue
			}
			ev := buttons.Event{Button: button, Pressed: value == 1, At: time.Now()}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
