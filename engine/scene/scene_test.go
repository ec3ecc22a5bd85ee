package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/light"
)

func TestSceneRegistry(t *testing.T) {
	sc := NewScene("test")
	assert.Equal(t, "test", sc.Name())
	assert.Equal(t, 0, sc.Count())

	a := NewMarker("a", 10)
	b := NewMarker("b", 10)
	idA := sc.Add(a)
	idB := sc.Add(b)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, sc.Count())

	got := sc.Get(idA)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Name())

	sc.Remove(idA)
	assert.Equal(t, 1, sc.Count())
	assert.Nil(t, sc.Get(idA))

	// Removing an unknown ID is harmless.
	sc.Remove(9999)
	assert.Equal(t, 1, sc.Count())
}

func TestSceneLightList(t *testing.T) {
	sc := NewScene("test")
	key := light.NewLight(light.KindSpot, "key")
	fill := light.NewLight(light.KindPoint, "fill")

	sc.AddLight(key)
	sc.AddLight(fill)
	assert.Len(t, sc.Lights(), 2)

	sc.RemoveLight(key)
	lights := sc.Lights()
	require.Len(t, lights, 1)
	assert.Equal(t, "fill", lights[0].Name())

	// Removing a light twice is harmless.
	sc.RemoveLight(key)
	assert.Len(t, sc.Lights(), 1)
}

func TestSceneLightsReturnsCopy(t *testing.T) {
	sc := NewScene("test")
	sc.AddLight(light.NewLight(light.KindPoint, "a"))

	snapshot := sc.Lights()
	snapshot[0] = nil
	assert.NotNil(t, sc.Lights()[0])
}

func TestSceneAtmosphere(t *testing.T) {
	sc := NewScene("test")

	sky := common.Color{R: 0.5, G: 0.8, B: 0.9}
	sc.SetBackground(sky)
	assert.Equal(t, sky, sc.Background())

	fogColor := common.Color{R: 0.7, G: 0.9, B: 0.95}
	sc.SetFog(fogColor, 0.0008)
	assert.Equal(t, fogColor, sc.Fog().Color)
	assert.InDelta(t, 0.0008, sc.Fog().Density, 1e-9)

	sc.SetAmbient(common.Color{R: 1, G: 1, B: 1}, 0.6)
	assert.InDelta(t, 0.6, sc.AmbientIntensity(), 1e-6)
}

func TestSceneClear(t *testing.T) {
	sc := NewScene("test")
	sc.Add(NewMarker("a", 10))
	sc.AddLight(light.NewLight(light.KindPoint, "a"))

	sc.Clear()

	assert.Equal(t, 0, sc.Count())
	assert.Empty(t, sc.Lights())
}

func TestMarkerDefaults(t *testing.T) {
	m := NewMarker("sun", 60)
	assert.Equal(t, "sun", m.Name())
	assert.Equal(t, float32(60), m.Size())
	assert.True(t, m.Visible())
	assert.Equal(t, common.Color{R: 1, G: 1, B: 1}, m.Color())

	m.SetVisible(false)
	m.SetPosition(common.Vec3{1, 2, 3})
	assert.False(t, m.Visible())
	assert.Equal(t, common.Vec3{1, 2, 3}, m.Position())
}
