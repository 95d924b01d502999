package buttons

import (
	"context"
	"time"
)

// Button is a logical device button.
type Button int

const (
	Back Button = iota
	Confirm
	Left
	Right
	Up
	Down

	buttonCount
)

func (b Button) String() string {
	switch b {
	case Back:
		return "back"
	case Confirm:
		return "confirm"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Event is a raw press or release of one button.
type Event struct {
	Button  Button
	Pressed bool
	At      time.Time
}

// Source delivers raw button events.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }

// ChanSource is a buffered source fed by Press/Release/Tap. The simulator and tests
// use it in place of real hardware. Its channel is never closed, so it survives the
// Stop/Start cycle around an external program.
type ChanSource struct {
	ch chan Event
}

func NewChanSource(buffer int) *ChanSource {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChanSource{ch: make(chan Event, buffer)}
}

func (s *ChanSource) Start(ctx context.Context) error { return nil }
func (s *ChanSource) Stop() error                     { return nil }
func (s *ChanSource) Events() <-chan Event { return s.ch }

// Send queues an event, dropping it when the buffer is full.
func (s *ChanSource) Send(ev Event) bool {
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Tap queues a press at 'at' followed by a release held for 'hold'.
func (s *ChanSource) Tap(b Button, at time.Time, hold time.Duration) {
	s.Send(Event{Button: b, Pressed: true, At: at})
	s.Send(Event{Button: b, Pressed: false, At: at.Add(hold)})
}
