package mood_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groveworks/moodscape/engine/effects"
	"github.com/groveworks/moodscape/engine/lighting"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/scene"
	"github.com/groveworks/moodscape/engine/vegetation"
)

const twoMoodYAML = `
moods:
  Harmonisch:
    sky: "#87ceeb"
    fog:
      color: "#c8e6f5"
      density: 0.0008
    bloom:
      threshold: 0.85
      strength: 0.8
      radius: 0.5
    particles:
      count: 100
      behavior: {spawnArea: [800, 200, 800], velocity: [0, 1, 0], direction: up}
  Energiegeladen:
    sky: "#1a0a2e"
    fog:
      color: "#2d1b4e"
      density: 0.0012
    bloom:
      threshold: 0.6
      strength: 1.4
      radius: 0.9
    particles:
      - count: 50
        behavior: {spawnArea: [100, 100, 100], velocity: [0, 1, 0]}
      - count: 60
        behavior: {spawnArea: [100, 100, 100], velocity: [0, 1, 0]}
    lights:
      - {name: strobe-a, type: point, intensity: 2, position: [0, 100, 0]}
      - name: sweep
        type: spot
        intensity: 3
        angle: 0.6
        position: [0, 300, 0]
`

// harness wires a real scene and real subsystems, headless.
type harness struct {
	scene   scene.Scene
	rig     *lighting.Rig
	fx      *effects.Effects
	styler  *vegetation.Styler
	manager *mood.Manager
}

func newHarness(t *testing.T, opts ...mood.ManagerOption) *harness {
	t.Helper()
	catalog, err := mood.ParseCatalog([]byte(twoMoodYAML))
	require.NoError(t, err)

	sc := scene.NewScene("test")
	rig := lighting.NewRig(sc, lighting.WithRandSource(rand.NewSource(1)))
	fx := effects.New(sc, effects.WithRandSource(rand.NewSource(1)))
	styler := vegetation.NewStyler(&vegetation.Material{}, &vegetation.Material{}, &vegetation.Material{})

	return &harness{
		scene:   sc,
		rig:     rig,
		fx:      fx,
		styler:  styler,
		manager: mood.NewManager(catalog, sc, rig, fx, styler, opts...),
	}
}

func TestCurrentNilBeforeFirstApply(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.manager.Current())
}

func TestApplyMoodHarmonischScenario(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Harmonisch"))

	assert.Equal(t, 0, h.rig.DynamicCount(), "Harmonisch declares no dynamic lights")
	assert.InDelta(t, 0.85, h.fx.Bloom().Threshold, 1e-6)
	assert.InDelta(t, 0.0008, h.scene.Fog().Density, 1e-9)
	assert.Equal(t, 1, h.fx.SystemCount())
	require.NotNil(t, h.manager.Current())
	assert.Equal(t, "Harmonisch", h.manager.Current().Name)
}

func TestApplyMoodIdempotent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Energiegeladen"))

	lights := len(h.scene.Lights())
	objects := h.scene.Count()

	require.NoError(t, h.manager.ApplyMood("Energiegeladen"))

	assert.Equal(t, lights, len(h.scene.Lights()), "re-apply must not duplicate lights")
	assert.Equal(t, objects, h.scene.Count(), "re-apply must not duplicate particle systems")
	assert.Equal(t, 2, h.rig.DynamicCount())
	assert.Equal(t, 2, h.fx.SystemCount())
}

func TestNoLeakAcrossSwitches(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 50; i++ {
		require.NoError(t, h.manager.ApplyMood("Harmonisch"))
		require.NoError(t, h.manager.ApplyMood("Energiegeladen"))
	}

	// The last applied mood declares 2 dynamic lights and 2 particle
	// systems; everything older must be gone.
	assert.Equal(t, 2, h.rig.DynamicCount())
	assert.Equal(t, 2, h.fx.SystemCount())
	// Scene lights: key light plus the 2 dynamics.
	assert.Equal(t, 3, len(h.scene.Lights()))
	// Scene objects: sun marker plus the 2 particle systems.
	assert.Equal(t, 3, h.scene.Count())
}

func TestUnknownMoodIsNoOp(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Harmonisch"))

	lights := len(h.scene.Lights())
	objects := h.scene.Count()
	fog := h.scene.Fog().Density

	err := h.manager.ApplyMood("Nonexistent")
	assert.Error(t, err)

	assert.Equal(t, "Harmonisch", h.manager.Current().Name)
	assert.Equal(t, lights, len(h.scene.Lights()))
	assert.Equal(t, objects, h.scene.Count())
	assert.Equal(t, fog, h.scene.Fog().Density)
}

func TestDisposeReturnsSceneToBaseline(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Energiegeladen"))

	h.fx.Dispose()
	h.rig.Dispose()

	assert.Equal(t, 0, h.scene.Count())
	assert.Empty(t, h.scene.Lights())
}

func TestAppliedCallback(t *testing.T) {
	var applied []string
	h := newHarness(t, mood.WithAppliedCallback(func(cfg *mood.Config) {
		applied = append(applied, cfg.Name)
	}))

	require.NoError(t, h.manager.ApplyMood("Harmonisch"))
	assert.Error(t, h.manager.ApplyMood("Nonexistent"))
	require.NoError(t, h.manager.ApplyMood("Energiegeladen"))

	assert.Equal(t, []string{"Harmonisch", "Energiegeladen"}, applied)
}

func TestReplaceCatalogReappliesCurrent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Harmonisch"))

	updated, err := mood.ParseCatalog([]byte(`
moods:
  Harmonisch:
    sky: "#000000"
    fog: {color: "#ffffff", density: 0.5}
`))
	require.NoError(t, err)

	h.manager.ReplaceCatalog(updated)

	assert.InDelta(t, 0.5, h.scene.Fog().Density, 1e-6, "reload re-applies the live mood")
	assert.Equal(t, 0, h.fx.SystemCount(), "reloaded definition has no particles")
}

func TestReplaceCatalogKeepsStateWhenMoodRemoved(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.ApplyMood("Energiegeladen"))

	updated, err := mood.ParseCatalog([]byte(`
moods:
  Anders: {sky: "#000000"}
`))
	require.NoError(t, err)

	h.manager.ReplaceCatalog(updated)

	assert.Equal(t, "Energiegeladen", h.manager.Current().Name)
	assert.Equal(t, 2, h.rig.DynamicCount())
}
