package lighting_test

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/lighting"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/scene"
)

func newRig(t *testing.T) (*lighting.Rig, scene.Scene) {
	t.Helper()
	sc := scene.NewScene("test")
	return lighting.NewRig(sc, lighting.WithRandSource(rand.NewSource(42))), sc
}

func pointSpec(name string, intensity float32, anim *mood.AnimationSpec) mood.LightSpec {
	return mood.LightSpec{
		Name:      name,
		Type:      mood.LightPoint,
		Color:     mood.SingleColor(common.Color{R: 1, G: 1, B: 1}),
		Intensity: mood.Scalar(intensity),
		Distance:  500,
		Decay:     2,
		Position:  mood.FixedVec(common.Vec3{10, 50, -10}),
		Animation: anim,
	}
}

func configWith(specs ...mood.LightSpec) *mood.Config {
	return &mood.Config{Name: "test", Lights: specs}
}

func TestApplyStaticCreatesDynamics(t *testing.T) {
	rig, sc := newRig(t)
	baseline := len(sc.Lights())

	rig.ApplyStatic(configWith(
		pointSpec("a", 2, nil),
		pointSpec("b", 1, nil),
	))

	assert.Equal(t, 2, rig.DynamicCount())
	assert.Equal(t, baseline+2, len(sc.Lights()))
	require.NotNil(t, rig.Dynamic("a"))
	assert.InDelta(t, 2.0, rig.Dynamic("a").Intensity(), 1e-6)
}

func TestApplyStaticTearsDownPreviousGeneration(t *testing.T) {
	rig, sc := newRig(t)
	baseline := len(sc.Lights())

	rig.ApplyStatic(configWith(pointSpec("a", 1, nil), pointSpec("b", 1, nil)))
	rig.ApplyStatic(configWith(pointSpec("c", 1, nil)))

	assert.Equal(t, 1, rig.DynamicCount())
	assert.Equal(t, baseline+1, len(sc.Lights()))
	assert.Nil(t, rig.Dynamic("a"))
	assert.NotNil(t, rig.Dynamic("c"))
}

func TestRangedSpecResolvesToFirstElement(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("ranged", 0, nil)
	spec.Intensity = mood.Range(2, 6)
	spec.Position = mood.SpanVec(common.Vec3{1, 2, 3}, common.Vec3{9, 9, 9})
	rig.ApplyStatic(configWith(spec))

	l := rig.Dynamic("ranged")
	require.NotNil(t, l)
	assert.InDelta(t, 2.0, l.Intensity(), 1e-6)
	assert.Equal(t, common.Vec3{1, 2, 3}, l.Position())
}

func TestUnsupportedLightTypeIsSkipped(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("weird", 1, nil)
	spec.Type = mood.LightKind(99)
	rig.ApplyStatic(configWith(spec))

	assert.Equal(t, 0, rig.DynamicCount())
}

func TestDisabledAnimationStaysStatic(t *testing.T) {
	rig, _ := newRig(t)

	disabled := pointSpec("off", 2, &mood.AnimationSpec{Enabled: false, Mode: mood.AnimStrobe, TriggerChance: 1, MaxIntensity: 9, FadeSpeed: 0.5})
	absent := pointSpec("none", 3, nil)
	cfg := configWith(disabled, absent)
	rig.ApplyStatic(cfg)

	for frame := 1; frame <= 100; frame++ {
		rig.Update(float32(frame)*0.016, cfg)
	}

	assert.InDelta(t, 2.0, rig.Dynamic("off").Intensity(), 1e-6)
	assert.Equal(t, common.Vec3{10, 50, -10}, rig.Dynamic("off").Position())
	assert.InDelta(t, 3.0, rig.Dynamic("none").Intensity(), 1e-6)
}

func TestPulseDeterminism(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("pulse", 2, &mood.AnimationSpec{
		Enabled:        true,
		Mode:           mood.AnimPulse,
		Frequency:      1,
		PhaseOffset:    0,
		IntensityRange: &[2]float32{0.5, 1.5},
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	rig.Update(0.25, cfg)
	assert.InDelta(t, 2.0*1.5, rig.Dynamic("pulse").Intensity(), 1e-4, "quarter period is the peak")

	rig.Update(0.75, cfg)
	assert.InDelta(t, 2.0*0.5, rig.Dynamic("pulse").Intensity(), 1e-4, "three-quarter period is the trough")
}

func TestMalformedPulseBagSkipsFrame(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("broken", 2, &mood.AnimationSpec{
		Enabled:   true,
		Mode:      mood.AnimPulse,
		Frequency: 1,
		// IntensityRange missing.
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	for frame := 1; frame <= 50; frame++ {
		rig.Update(float32(frame)*0.016, cfg)
	}

	assert.InDelta(t, 2.0, rig.Dynamic("broken").Intensity(), 1e-6)
}

func TestStrobeStatisticalBound(t *testing.T) {
	rig, _ := newRig(t)

	const maxIntensity = 5.0
	spec := pointSpec("strobe", 1, &mood.AnimationSpec{
		Enabled:       true,
		Mode:          mood.AnimStrobe,
		TriggerChance: 0.1,
		FadeSpeed:     0.3,
		MaxIntensity:  maxIntensity,
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	l := rig.Dynamic("strobe")
	triggers := 0
	const frames = 10000
	for frame := 1; frame <= frames; frame++ {
		rig.Update(float32(frame)*0.016, cfg)
		if l.Intensity() == maxIntensity {
			triggers++
		}
	}

	fraction := float64(triggers) / frames
	assert.InDelta(t, 0.1, fraction, 0.01, "trigger rate should track triggerChance")
}

func TestStrobeDecaysTowardBase(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("strobe", 1, &mood.AnimationSpec{
		Enabled:       true,
		Mode:          mood.AnimStrobe,
		TriggerChance: 0.00000001, // effectively never triggers
		FadeSpeed:     0.5,
		MaxIntensity:  5,
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	l := rig.Dynamic("strobe")
	l.SetIntensity(5)

	rig.Update(0.016, cfg)
	assert.InDelta(t, 3.0, l.Intensity(), 1e-4, "one lerp step toward base")
	rig.Update(0.032, cfg)
	assert.InDelta(t, 2.0, l.Intensity(), 1e-4)
}

func TestDiscoCircleGeometry(t *testing.T) {
	rig, _ := newRig(t)

	spec := mood.LightSpec{
		Name:      "disco",
		Type:      mood.LightSpot,
		Color:     mood.SingleColor(common.Color{R: 1, G: 1, B: 1}),
		Intensity: mood.Scalar(3),
		Angle:     0.6,
		Penumbra:  0.3,
		Distance:  1000,
		Decay:     1.5,
		Position:  mood.FixedVec(common.Vec3{100, 300, -50}),
		Animation: &mood.AnimationSpec{
			Enabled:        true,
			Mode:           mood.AnimDisco,
			RotationSpeed:  2,
			Radius:         50,
			HeightOffset:   20,
			TargetMovement: true,
		},
	}
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	const elapsed = 1.25
	rig.Update(elapsed, cfg)

	angle := float32(elapsed * 2)
	l := rig.Dynamic("disco")
	pos := l.Position()
	assert.InDelta(t, 100+math32.Cos(angle)*50, pos[0], 1e-4)
	assert.InDelta(t, 300+20, pos[1], 1e-4)
	assert.InDelta(t, -50+math32.Sin(angle)*50, pos[2], 1e-4)

	target := l.Target()
	assert.InDelta(t, 0, target[1], 1e-4, "target stays at ground level")
	dx := target[0] - 100
	dz := target[2] + 50
	assert.InDelta(t, 25, math32.Sqrt(dx*dx+dz*dz), 1e-3, "target travels the half-radius circle")
}

func TestExplosionSpike(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("boom", 1.5, &mood.AnimationSpec{
		Enabled:             true,
		Mode:                mood.AnimExplosion,
		TriggerChance:       1, // always fires
		FadeSpeed:           0.2,
		IntensityMultiplier: 4,
		RandomPosition:      true,
		PositionRange:       common.Vec3{100, 40, 100},
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	rig.Update(0.016, cfg)

	l := rig.Dynamic("boom")
	assert.InDelta(t, 6.0, l.Intensity(), 1e-4)

	pos := l.Position()
	assert.LessOrEqual(t, math32.Abs(pos[0]-10), float32(50))
	assert.LessOrEqual(t, math32.Abs(pos[1]-50), float32(20))
	assert.LessOrEqual(t, math32.Abs(pos[2]+10), float32(50))
}

func TestFlashCooldownCycle(t *testing.T) {
	rig, _ := newRig(t)

	spec := pointSpec("flash", 1, &mood.AnimationSpec{
		Enabled:       true,
		Mode:          mood.AnimFlash,
		Cooldown:      1,
		FlashDuration: 0.2,
		MaxIntensity:  8,
	})
	cfg := configWith(spec)
	rig.ApplyStatic(cfg)

	l := rig.Dynamic("flash")

	// First frame at or past the boundary fires the flash.
	rig.Update(0.01, cfg)
	assert.InDelta(t, 8.0, l.Intensity(), 1e-6)

	// Still inside the flash window.
	rig.Update(0.1, cfg)
	assert.InDelta(t, 8.0, l.Intensity(), 1e-6)

	// Past the window, back to base.
	rig.Update(0.3, cfg)
	assert.InDelta(t, 1.0, l.Intensity(), 1e-6)

	// Next cooldown boundary fires again.
	rig.Update(1.05, cfg)
	assert.InDelta(t, 8.0, l.Intensity(), 1e-6)
}

func TestDisposeRemovesEverything(t *testing.T) {
	rig, sc := newRig(t)
	rig.ApplyStatic(configWith(pointSpec("a", 1, nil)))

	rig.Dispose()

	assert.Empty(t, sc.Lights())
	assert.Equal(t, 0, sc.Count())
}
