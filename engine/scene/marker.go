package scene

import (
	"sync"

	"github.com/groveworks/moodscape/common"
)

// Marker is a simple visual scene object: a colored billboard at a world
// position, used for the sun disc that tracks the key light. Markers carry
// no GPU resources of their own; each frame the engine packs the visible
// markers into a shared billboard cloud and the renderer draws that.
type Marker struct {
	mu sync.RWMutex

	name     string
	position common.Vec3
	color    common.Color
	size     float32
	visible  bool
}

var _ Object = &Marker{}

// NewMarker creates a visible white marker with the given name and size.
//
// Parameters:
//   - name: the marker's identifier
//   - size: the world-space billboard size
//
// Returns:
//   - *Marker: the new marker
func NewMarker(name string, size float32) *Marker {
	return &Marker{
		name:    name,
		color:   common.Color{R: 1, G: 1, B: 1},
		size:    size,
		visible: true,
	}
}

// Name returns the marker's identifier.
func (m *Marker) Name() string {
	return m.name
}

// Position returns the marker's world position.
func (m *Marker) Position() common.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// SetPosition moves the marker.
func (m *Marker) SetPosition(p common.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = p
}

// Color returns the marker's color.
func (m *Marker) Color() common.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

// SetColor sets the marker's color.
func (m *Marker) SetColor(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

// Size returns the marker's world-space billboard size.
func (m *Marker) Size() float32 {
	return m.size
}

// Visible returns whether the marker should be drawn.
func (m *Marker) Visible() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible
}

// SetVisible toggles whether the marker is drawn.
func (m *Marker) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = visible
}
