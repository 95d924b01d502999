//go:build !linux

package system

import (
	"context"

	"github.com/rook-computer/shelf/internal/buttons"
)

// EvdevSource is unavailable off Linux; it never delivers events.
type EvdevSource struct {
	Logger logger
	events chan buttons.Event
}

func NewEvdevSource(glob string, l logger) *EvdevSource {
	return &EvdevSource{Logger: l, events: make(chan buttons.Event)}
}

func (s *EvdevSource) Events() <-chan buttons.Event { return s.events }

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev input not supported on this platform")
	}
	return nil
}

func (s *EvdevSource) Stop() error { return nil }
