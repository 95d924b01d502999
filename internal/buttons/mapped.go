package buttons

import (
	"fmt"
	"time"
)

// FrontLayout describes the physical order of the four front buttons.
type FrontLayout int

const (
	LayoutBackConfirmLeftRight FrontLayout = iota
	LayoutLeftRightBackConfirm
)

func ParseFrontLayout(s string) (FrontLayout, error) {
	switch s {
	case "", "back-confirm-left-right":
		return LayoutBackConfirmLeftRight, nil
	case "left-right-back-confirm":
		return LayoutLeftRightBackConfirm, nil
	default:
		return LayoutBackConfirmLeftRight, fmt.Errorf("unknown front button layout %q", s)
	}
}

func (l FrontLayout) String() string {
	if l == LayoutLeftRightBackConfirm {
		return "left-right-back-confirm"
	}
	return "back-confirm-left-right"
}

// Front lists the logical front buttons in the order they sit on the device, left to right.
func (l FrontLayout) Front() [4]Button {
	if l == LayoutLeftRightBackConfirm {
		return [4]Button{Left, Right, Back, Confirm}
	}
	return [4]Button{Back, Confirm, Left, Right}
}

// Mapped turns raw events into per-tick edges and hold durations.
// Update, the queries and Labels are meant to be called from the input loop only.
type Mapped struct {
	src    Source
	layout func() FrontLayout
	now    func() time.Time

	down      [buttonCount]bool
	pressedAt [buttonCount]time.Time
	pressed   [buttonCount]bool
	released  [buttonCount]bool
	heldFor   time.Duration
	cutoff    time.Time
}

// NewMapped maps src. layout is consulted on every Labels call so a settings change
// takes effect immediately; nil means the default layout.
func NewMapped(src Source, layout func() FrontLayout) *Mapped {
	if layout == nil {
		layout = func() FrontLayout { return LayoutBackConfirmLeftRight }
	}
	return &Mapped{src: src, layout: layout, now: time.Now}
}

// Update drains pending events without blocking and recomputes the edges for this tick.
func (m *Mapped) Update() {
	m.pressed = [buttonCount]bool{}
	m.released = [buttonCount]bool{}
	m.heldFor = 0
	if m.src == nil {
		return
	}
	for {
		select {
		case ev, ok := <-m.src.Events():
			if !ok {
				return
			}
			m.apply(ev)
		default:
			return
		}
	}
}

// Discard forgets everything pressed before cutoff: queued events are drained, held
// buttons are let go and events stamped earlier than cutoff that arrive later are
// ignored. Used when another program had the buttons.
func (m *Mapped) Discard(cutoff time.Time) {
	m.cutoff = cutoff
	m.down = [buttonCount]bool{}
	m.pressed = [buttonCount]bool{}
	m.released = [buttonCount]bool{}
	m.heldFor = 0
	if m.src == nil {
		return
	}
	for {
		select {
		case _, ok := <-m.src.Events():
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (m *Mapped) apply(ev Event) {
	if ev.Button < 0 || ev.Button >= buttonCount {
		return
	}
	at := ev.At
	if at.IsZero() {
		at = m.now()
	}
	if at.Before(m.cutoff) {
		return
	}
	if ev.Pressed {
		if m.down[ev.Button] {
			return // key repeat
		}
		m.down[ev.Button] = true
		m.pressedAt[ev.Button] = at
		m.pressed[ev.Button] = true
		return
	}
	if !m.down[ev.Button] {
		return
	}
	m.down[ev.Button] = false
	m.released[ev.Button] = true
	if held := at.Sub(m.pressedAt[ev.Button]); held > m.heldFor {
		m.heldFor = held
	}
}

func (m *Mapped) WasPressed(b Button) bool  { return b >= 0 && b < buttonCount && m.pressed[b] }
func (m *Mapped) WasReleased(b Button) bool { return b >= 0 && b < buttonCount && m.released[b] }
func (m *Mapped) IsPressed(b Button) bool   { return b >= 0 && b < buttonCount && m.down[b] }

// WasAnyReleased reports whether any of bs was released this tick.
func (m *Mapped) WasAnyReleased(bs ...Button) bool {
	for _, b := range bs {
		if m.WasReleased(b) {
			return true
		}
	}
	return false
}

// HeldTime is the press duration of a button released this tick, or how long the
// longest currently held button has been down.
func (m *Mapped) HeldTime() time.Duration {
	if m.heldFor > 0 {
		return m.heldFor
	}
	var longest time.Duration
	now := m.now()
	for b := Button(0); b < buttonCount; b++ {
		if !m.down[b] {
			continue
		}
		if held := now.Sub(m.pressedAt[b]); held > longest {
			longest = held
		}
	}
	return longest
}

// Labels orders hint labels for the front buttons as they sit on the device.
// previous and next label Left and Right.
func (m *Mapped) Labels(back, confirm, previous, next string) [4]string {
	byButton := map[Button]string{Back: back, Confirm: confirm, Left: previous, Right: next}
	var out [4]string
	for i, b := range m.layout().Front() {
		out[i] = byButton[b]
	}
	return out
}
