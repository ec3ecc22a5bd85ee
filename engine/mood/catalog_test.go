package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harmonischYAML = `
moods:
  Harmonisch:
    sky: "#87ceeb"
    fog:
      color: "#c8e6f5"
      density: 0.0008
    ambient:
      color: "#ffffff"
      intensity: 0.6
    keyLight:
      color: "#fff4d6"
      intensity: 1.1
      position: [300, 400, 200]
    ground: "#4a7c3f"
    bloom:
      threshold: 0.85
      strength: 0.8
      radius: 0.5
    particles:
      count: 400
      material:
        size: [4, 8]
        texture: sparkle
        blending: additive
        opacity: 0.7
        color: "#fff6c0"
      behavior:
        spawnArea: [800, 200, 800]
        velocity: [[-1, 0.5, -1], [1, 2, 1]]
        direction: up
`

func TestParseCatalogHarmonisch(t *testing.T) {
	c, err := ParseCatalog([]byte(harmonischYAML))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	cfg, ok := c.Lookup("Harmonisch")
	require.True(t, ok)
	assert.Equal(t, "Harmonisch", cfg.Name)
	assert.InDelta(t, 0.85, cfg.Bloom.Threshold, 1e-6)
	assert.InDelta(t, 0.0008, cfg.Fog.Density, 1e-9)
	assert.Empty(t, cfg.Lights)

	require.Len(t, cfg.Particles, 1)
	ps := cfg.Particles[0]
	assert.Equal(t, 400, ps.Count)
	assert.Equal(t, TextureSparkle, ps.Material.Texture)
	assert.Equal(t, BlendAdditive, ps.Material.Blending)
	assert.Equal(t, DirectionUp, ps.Behavior.Direction)
	assert.Equal(t, VecSpan, ps.Behavior.Velocity.Kind())
}

func TestParseCatalogParticleSequence(t *testing.T) {
	c, err := ParseCatalog([]byte(`
moods:
  Doppelt:
    sky: "#000000"
    particles:
      - count: 10
        behavior: {spawnArea: [10, 10, 10], velocity: [0, 1, 0]}
      - count: 20
        behavior: {spawnArea: [10, 10, 10], velocity: [0, 1, 0]}
`))
	require.NoError(t, err)
	cfg, _ := c.Lookup("Doppelt")
	require.Len(t, cfg.Particles, 2)
	assert.Equal(t, 20, cfg.Particles[1].Count)
}

func TestParseCatalogEmpty(t *testing.T) {
	_, err := ParseCatalog([]byte("moods: {}"))
	assert.Error(t, err)
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bloom threshold out of range": `
moods:
  Kaputt:
    bloom: {threshold: 1.5}
`,
		"negative fog density": `
moods:
  Kaputt:
    fog: {density: -1}
`,
		"particle count over cap": `
moods:
  Kaputt:
    particles:
      count: 9000
      behavior: {spawnArea: [10, 10, 10], velocity: [0, 1, 0]}
`,
		"zero spawn area with particles": `
moods:
  Kaputt:
    particles:
      count: 10
      behavior: {spawnArea: [0, 10, 10], velocity: [0, 1, 0]}
`,
		"duplicate light names": `
moods:
  Kaputt:
    lights:
      - {name: a, type: point, intensity: 1, position: [0, 0, 0]}
      - {name: a, type: point, intensity: 1, position: [0, 0, 0]}
`,
		"unnamed light": `
moods:
  Kaputt:
    lights:
      - {type: point, intensity: 1, position: [0, 0, 0]}
`,
		"spot without angle": `
moods:
  Kaputt:
    lights:
      - {name: a, type: spot, intensity: 1, position: [0, 0, 0]}
`,
		"cycling hue without speed": `
moods:
  Kaputt:
    background: {animation: cycling-hue}
`,
		"unknown animation mode": `
moods:
  Kaputt:
    lights:
      - name: a
        type: point
        intensity: 1
        position: [0, 0, 0]
        animation: {enabled: true, mode: wobble}
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalogAnimationBagNotValidated(t *testing.T) {
	// A structurally valid light whose animation bag is missing its mode
	// parameters must still load; the rig skips it per frame instead.
	c, err := ParseCatalog([]byte(`
moods:
  Halbfertig:
    lights:
      - name: broken-pulse
        type: point
        intensity: 1
        position: [0, 0, 0]
        animation: {enabled: true, mode: pulse}
`))
	require.NoError(t, err)
	cfg, _ := c.Lookup("Halbfertig")
	require.Len(t, cfg.Lights, 1)
	assert.True(t, cfg.Lights[0].Animated())
	assert.Nil(t, cfg.Lights[0].Animation.IntensityRange)
}

func TestCatalogNamesSorted(t *testing.T) {
	c, err := ParseCatalog([]byte(`
moods:
  Zebra: {sky: "#000000"}
  Anfang: {sky: "#000000"}
  Mitte: {sky: "#000000"}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Anfang", "Mitte", "Zebra"}, c.Names())
}
