package state

import (
	"sync"

	"github.com/rook-computer/shelf/internal/buttons"
)

type SettingsSnapshot struct {
	// OPDSURL is the remote library endpoint; empty hides the OPDS entry.
	OPDSURL      string
	FrontButtons buttons.FrontLayout
}

// SettingsReader is the read-only view the activities get.
type SettingsReader interface {
	Snapshot() SettingsSnapshot
}

type Settings struct {
	mu       sync.RWMutex
	snapshot SettingsSnapshot
}

func NewSettings(initial SettingsSnapshot) *Settings {
	return &Settings{snapshot: initial}
}

func (s *Settings) Snapshot() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Settings) SetOPDSURL(url string) {
	s.mu.Lock()
	s.snapshot.OPDSURL = url
	s.mu.Unlock()
}

func (s *Settings) SetFrontButtons(layout buttons.FrontLayout) {
	s.mu.Lock()
	s.snapshot.FrontButtons = layout
	s.mu.Unlock()
}
