package surface

import (
	"errors"

	"ArtistryCanvas/internal/state"
)

// ErrMounted is returned when Mount is called on a mounted manager.
var ErrMounted = errors.New("surface: already mounted")

// Layout is the on-screen element hosting the surface.
type Layout interface {
	// DisplaySize returns the element's current layout size.
	DisplaySize() state.Size
	// Origin returns the absolute position of the element's top-left corner.
	Origin() state.Point
}

// Viewport delivers resize notifications.
type Viewport interface {
	OnResize(fn func()) (cancel func())
}

// Manager keeps a Surface's backing dimensions equal to its layout size for
// as long as it is mounted.
type Manager struct {
	surface  *Surface
	layout   Layout
	cancel   func()
	OnResize func(state.Size) // called after every resize, may be nil
}

// NewManager returns a manager for s.
func NewManager(s *Surface) *Manager {
	return &Manager{surface: s}
}

// Mounted reports whether Mount succeeded and Unmount has not been called.
func (m *Manager) Mounted() bool { return m.layout != nil }

// Mount sizes the surface to the layout and starts following viewport
// resizes.
func (m *Manager) Mount(layout Layout, viewport Viewport) error {
	if m.layout != nil {
		return ErrMounted
	}
	m.layout = layout
	m.Sync()
	if viewport != nil {
		m.cancel = viewport.OnResize(m.Sync)
	}
	return nil
}

// Sync re-measures the layout and resizes the surface. Painted content is
// cleared even when the size did not change.
func (m *Manager) Sync() {
	if m.layout == nil {
		return
	}
	size := m.layout.DisplaySize()
	m.surface.Resize(size)
	if m.OnResize != nil {
		m.OnResize(size)
	}
}

// Unmount stops following viewport resizes. It is safe to call more than
// once and on a manager that was never mounted.
func (m *Manager) Unmount() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.layout = nil
}

// Origin returns the live absolute origin of the surface, or false when the
// surface is not mounted or has never been measured.
func (m *Manager) Origin() (state.Point, bool) {
	if m.layout == nil || !m.surface.Measured() {
		return state.Point{}, false
	}
	return m.layout.Origin(), true
}
