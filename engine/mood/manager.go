package mood

import (
	"fmt"
	"log"
	"sync"

	"github.com/groveworks/moodscape/engine/scene"
)

// LightingSubsystem receives a mood's static lighting parameters.
type LightingSubsystem interface {
	ApplyStatic(cfg *Config)
}

// EffectsSubsystem receives a mood's particle and bloom parameters.
type EffectsSubsystem interface {
	ApplyStatic(cfg *Config)
}

// VegetationSubsystem receives a mood's vegetation styling parameters.
type VegetationSubsystem interface {
	ApplyStatic(cfg *Config)
}

// Manager is the mood orchestrator. It resolves mood names against the
// catalog and pushes the resolved configuration into the scene and the three
// subsystems in a fixed order: lighting, then effects, then vegetation.
//
// Subsystem calls are direct method calls, not events; the fixed ordering is
// part of the contract. Events cross the kiosk boundary only.
type Manager struct {
	mu      sync.RWMutex
	catalog *Catalog
	current *Config

	scene      scene.Scene
	lighting   LightingSubsystem
	effects    EffectsSubsystem
	vegetation VegetationSubsystem

	onApplied func(cfg *Config)
}

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager)

// WithAppliedCallback is an option builder that registers a callback invoked
// after every successful mood application, with the applied configuration.
// The callback runs on the applying goroutine.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - ManagerOption: option function to apply
func WithAppliedCallback(fn func(cfg *Config)) ManagerOption {
	return func(m *Manager) {
		m.onApplied = fn
	}
}

// NewManager creates the orchestrator. The catalog, scene, and all three
// subsystems are required.
//
// Parameters:
//   - catalog: the immutable mood catalog
//   - sc: the live scene
//   - lighting: the lighting subsystem
//   - effects: the effects subsystem
//   - vegetation: the vegetation styling subsystem
//   - opts: functional options to further configure the manager
//
// Returns:
//   - *Manager: the new orchestrator
func NewManager(catalog *Catalog, sc scene.Scene, lighting LightingSubsystem, effects EffectsSubsystem, vegetation VegetationSubsystem, opts ...ManagerOption) *Manager {
	if catalog == nil || sc == nil || lighting == nil || effects == nil || vegetation == nil {
		panic("mood: NewManager requires a catalog, a scene, and all three subsystems")
	}

	m := &Manager{
		catalog:    catalog,
		scene:      sc,
		lighting:   lighting,
		effects:    effects,
		vegetation: vegetation,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ApplyMood resolves a mood name and applies its configuration. An unknown
// name leaves the scene exactly as it was.
//
// Re-applying the current mood is idempotent: subsystems fully replace their
// per-mood resources, so live light and particle counts match the config
// regardless of how many times it is applied.
//
// Parameters:
//   - name: the mood's catalog key
//
// Returns:
//   - error: if the name is not in the catalog
func (m *Manager) ApplyMood(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.catalog.Lookup(name)
	if !ok {
		log.Printf("[Mood] unknown mood %q, keeping %q", name, m.currentNameLocked())
		return fmt.Errorf("unknown mood %q", name)
	}

	m.applyLocked(cfg)
	return nil
}

// applyLocked pushes cfg into the scene and subsystems. Callers hold m.mu.
func (m *Manager) applyLocked(cfg *Config) {
	m.scene.SetBackground(cfg.Sky)
	m.scene.SetFog(cfg.Fog.Color, cfg.Fog.Density)

	m.lighting.ApplyStatic(cfg)
	m.effects.ApplyStatic(cfg)
	m.vegetation.ApplyStatic(cfg)

	m.current = cfg
	log.Printf("[Mood] applied %q: %d light(s), %d particle system(s)", cfg.Name, len(cfg.Lights), len(cfg.Particles))

	if m.onApplied != nil {
		m.onApplied(cfg)
	}
}

// Current returns the active mood configuration, or nil before the first
// successful ApplyMood.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Catalog returns the manager's active catalog.
func (m *Manager) Catalog() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// ReplaceCatalog swaps in a new catalog and re-applies the current mood so a
// reloaded definition takes effect immediately. If the current mood no
// longer exists in the new catalog, the live scene keeps its state until the
// next ApplyMood.
//
// Parameters:
//   - catalog: the replacement catalog
func (m *Manager) ReplaceCatalog(catalog *Catalog) {
	if catalog == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog = catalog
	if m.current == nil {
		return
	}

	cfg, ok := catalog.Lookup(m.current.Name)
	if !ok {
		log.Printf("[Mood] reloaded catalog no longer defines %q, keeping live state", m.current.Name)
		return
	}
	m.applyLocked(cfg)
}

func (m *Manager) currentNameLocked() string {
	if m.current == nil {
		return "<none>"
	}
	return m.current.Name
}
