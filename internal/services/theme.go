package service

import (
	"sync"

	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/state"
)

// ThemeService holds the chosen appearance mode and the scheme the host last
// reported. The host scheme only matters in auto mode.
type ThemeService struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	mode    models.ThemeMode
	system  models.Scheme
	changes *state.Broadcaster[models.ThemeState]
}

func NewThemeService(mode models.ThemeMode, system models.Scheme) *ThemeService {
	if !validMode(mode) {
		mode = models.ThemeAuto
	}

	return &ThemeService{
		mode:    mode,
		system:  normalizeScheme(system),
		changes: state.NewBroadcaster[models.ThemeState](),
	}
}

func (s *ThemeService) SetMode(mode models.ThemeMode) error {
	if !validMode(mode) {
		return errors.AddValidationError("mode", "must be one of light, dark or auto")
	}

	s.update(func() { s.mode = mode })

	return nil
}

// Toggle steps auto -> light -> dark -> auto and returns the new mode.
func (s *ThemeService) Toggle() models.ThemeMode {
	var next models.ThemeMode

	s.update(func() {
		switch s.mode {
		case models.ThemeAuto:
			s.mode = models.ThemeLight
		case models.ThemeLight:
			s.mode = models.ThemeDark
		default:
			s.mode = models.ThemeAuto
		}
		next = s.mode
	})

	return next
}

// SetSystemScheme records the host preference. Anything but dark reads as light.
func (s *ThemeService) SetSystemScheme(scheme models.Scheme) {
	scheme = normalizeScheme(scheme)

	s.update(func() { s.system = scheme })
}

func (s *ThemeService) Mode() models.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

func (s *ThemeService) Effective() models.Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.effectiveLocked()
}

func (s *ThemeService) Palette() models.Palette {
	return paletteFor(s.Effective())
}

func (s *ThemeService) State() models.ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stateLocked()
}

func (s *ThemeService) Subscribe(fn func(models.ThemeState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// update publishes only when the visible state actually changed.
func (s *ThemeService) update(fn func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	before := s.stateLocked()
	fn()
	after := s.stateLocked()
	s.mu.Unlock()

	if before != after {
		s.changes.Publish(after)
	}
}

func (s *ThemeService) stateLocked() models.ThemeState {
	effective := s.effectiveLocked()

	return models.ThemeState{
		Mode:      s.mode,
		Effective: effective,
		Palette:   paletteFor(effective),
	}
}

func (s *ThemeService) effectiveLocked() models.Scheme {
	switch s.mode {
	case models.ThemeLight:
		return models.SchemeLight
	case models.ThemeDark:
		return models.SchemeDark
	default:
		return s.system
	}
}

func paletteFor(scheme models.Scheme) models.Palette {
	if scheme == models.SchemeDark {
		return models.DarkPalette
	}

	return models.LightPalette
}

func validMode(mode models.ThemeMode) bool {
	return mode == models.ThemeLight || mode == models.ThemeDark || mode == models.ThemeAuto
}

func normalizeScheme(scheme models.Scheme) models.Scheme {
	if scheme == models.SchemeDark {
		return models.SchemeDark
	}

	return models.SchemeLight
}
