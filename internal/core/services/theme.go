package services

import (
	"sync"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// Ensure ThemeService implements the interface.
var _ driving.ThemeService = (*ThemeService)(nil)

// KeyTheme is the preference key holding the theme mode.
const KeyTheme = "ui.theme"

// ThemeService holds the process-wide light/dark mode.
// The stored value is read once on first access. Storage failures are never
// surfaced: the service falls back to keeping the mode for the session only.
type ThemeService struct {
	mu          sync.Mutex
	store       driven.PreferenceStore
	mode        domain.ThemeMode
	loaded      bool
	sessionOnly bool
	appliers    []driving.ThemeApplier
}

// NewThemeService creates a theme service backed by store.
// A nil store keeps the preference in memory.
func NewThemeService(store driven.PreferenceStore) *ThemeService {
	return &ThemeService{
		store:       store,
		mode:        domain.DefaultThemeMode,
		sessionOnly: store == nil,
	}
}

// Get returns the current mode.
func (s *ThemeService) Get() domain.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.mode
}

// Toggle flips the mode, persists it and applies it.
func (s *ThemeService) Toggle() domain.ThemeMode {
	s.mu.Lock()
	s.load()
	next := s.mode.Toggle()
	appliers := s.commit(next)
	s.mu.Unlock()

	apply(appliers, next)
	return next
}

// Set changes the mode explicitly. Invalid modes are ignored.
func (s *ThemeService) Set(mode domain.ThemeMode) domain.ThemeMode {
	s.mu.Lock()
	s.load()
	if !mode.IsValid() {
		current := s.mode
		s.mu.Unlock()
		return current
	}
	appliers := s.commit(mode)
	s.mu.Unlock()

	apply(appliers, mode)
	return mode
}

// OnApply registers a side-effect hook and applies the current mode to it.
func (s *ThemeService) OnApply(fn driving.ThemeApplier) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.load()
	s.appliers = append(s.appliers, fn)
	mode := s.mode
	s.mu.Unlock()

	fn(mode)
}

// SessionOnly reports whether the preference is no longer persisted.
func (s *ThemeService) SessionOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionOnly
}

// load reads the stored mode once (caller must hold lock).
func (s *ThemeService) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	if s.sessionOnly {
		return
	}

	value, ok, err := s.store.GetPreference(KeyTheme)
	if err != nil {
		logger.Debug("theme: preference store unavailable, using session-only mode: %v", err)
		s.sessionOnly = true
		return
	}
	if !ok {
		return
	}
	mode, valid := domain.ParseThemeMode(value)
	if !valid {
		logger.Debug("theme: ignoring unknown stored value %q", value)
	}
	s.mode = mode
}

// commit stores mode and persists it (caller must hold lock).
// It returns the appliers to notify once the lock is released.
func (s *ThemeService) commit(mode domain.ThemeMode) []driving.ThemeApplier {
	s.mode = mode
	if !s.sessionOnly {
		if err := s.store.SetPreference(KeyTheme, mode.String()); err != nil {
			logger.Debug("theme: persisting %s failed, using session-only mode: %v", mode, err)
			s.sessionOnly = true
		}
	}
	out := make([]driving.ThemeApplier, len(s.appliers))
	copy(out, s.appliers)
	return out
}

func apply(appliers []driving.ThemeApplier, mode domain.ThemeMode) {
	for _, fn := range appliers {
		fn(mode)
	}
}
