// Package scene holds the live, mutable scene-graph state: background and
// fog, ambient light parameters, the light list, and a registry of visual
// objects with stable IDs. Subsystems own the resources they register here;
// the registry exists so teardown can be verified (object count returns to
// baseline after a mood switch or dispose).
package scene

import (
	"sync"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/light"
)

// Fog describes the scene's exponential fog.
type Fog struct {
	Color   common.Color
	Density float32
}

// Object is anything registered in the scene's object registry. Particle
// clouds and markers implement it; the scene itself only tracks and counts.
type Object interface {
	// Name returns a human-readable identifier for logs and tests.
	Name() string
}

// Scene manages the shared scene-graph state that the mood subsystems
// reconfigure and the renderer reads each frame.
// Thread-safe for concurrent access, though the engine drives all writes
// from the render goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Background returns the current background clear color.
	Background() common.Color

	// SetBackground sets the background clear color.
	SetBackground(c common.Color)

	// Fog returns the current exponential fog parameters.
	Fog() Fog

	// SetFog sets the exponential fog color and density.
	SetFog(c common.Color, density float32)

	// AmbientColor returns the ambient light color.
	AmbientColor() common.Color

	// AmbientIntensity returns the ambient light intensity.
	AmbientIntensity() float32

	// SetAmbient sets the ambient light color and intensity.
	SetAmbient(c common.Color, intensity float32)

	// AddLight adds a light to the scene's light list.
	AddLight(l light.Light)

	// RemoveLight removes a light from the scene's light list by reference.
	RemoveLight(l light.Light)

	// Lights returns a copy of the scene's light list.
	Lights() []light.Light

	// Add registers an object and returns its assigned ID.
	Add(obj Object) uint64

	// Remove unregisters the object with the given ID.
	Remove(id uint64)

	// Get returns the registered object with the given ID, or nil.
	Get(id uint64) Object

	// Objects returns a snapshot of all registered objects.
	Objects() []Object

	// Count returns the number of registered objects. Lights are tracked
	// separately via Lights().
	Count() int

	// Clear removes all lights and objects. Callers remain responsible for
	// releasing any GPU resources the removed entries own.
	Clear()
}

type sceneImpl struct {
	mu sync.RWMutex

	name string

	background common.Color
	fog        Fog

	ambientColor     common.Color
	ambientIntensity float32

	lights []light.Light

	registry map[uint64]Object
	nextID   uint64
}

var _ Scene = &sceneImpl{}

// NewScene creates an empty scene with a black background and no fog.
//
// Parameters:
//   - name: the scene's identifier
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		name:     name,
		registry: make(map[uint64]Object),
		nextID:   1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sceneImpl) Name() string {
	return s.name
}

func (s *sceneImpl) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *sceneImpl) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *sceneImpl) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *sceneImpl) SetFog(c common.Color, density float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = Fog{Color: c, Density: density}
}

func (s *sceneImpl) AmbientColor() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *sceneImpl) AmbientIntensity() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientIntensity
}

func (s *sceneImpl) SetAmbient(c common.Color, intensity float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = c
	s.ambientIntensity = intensity
}

func (s *sceneImpl) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *sceneImpl) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *sceneImpl) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]light.Light, len(s.lights))
	copy(cp, s.lights)
	return cp
}

func (s *sceneImpl) Add(obj Object) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.registry[id] = obj
	return id
}

func (s *sceneImpl) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *sceneImpl) Get(id uint64) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *sceneImpl) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objs := make([]Object, 0, len(s.registry))
	for _, obj := range s.registry {
		objs = append(objs, obj)
	}
	return objs
}

func (s *sceneImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *sceneImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = nil
	s.registry = make(map[uint64]Object)
}
