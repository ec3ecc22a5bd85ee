package lighting

import (
	"github.com/chewxy/math32"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/mood"
)

// Target circle geometry for disco target movement: the aim point travels a
// smaller concentric circle, phase-shifted from the light itself so the
// beam sweeps rather than points straight down.
const (
	discoTargetRadiusFactor = 0.5
	discoTargetPhaseShift   = math32.Pi / 3
)

// animate dispatches one frame of procedural animation for a single dynamic
// light. Each mode validates its own parameter bag and silently skips the
// frame when the bag is malformed; an animation bug must never take down
// the render loop.
func (r *Rig) animate(d *dynamicLight, elapsed float32) {
	switch d.spec.Animation.Mode {
	case mood.AnimStrobe:
		r.animateStrobe(d)
	case mood.AnimDisco:
		r.animateDisco(d, elapsed)
	case mood.AnimExplosion:
		r.animateExplosion(d)
	case mood.AnimPulse:
		r.animatePulse(d, elapsed)
	case mood.AnimFlash:
		r.animateFlash(d, elapsed)
	}
}

// animateStrobe snaps intensity to maxIntensity with probability
// triggerChance each frame, optionally picking a random color from the
// spec's palette; otherwise it takes a single lerp step back toward the
// base intensity, producing an exponential-looking decay over many frames.
//
// The fade step is per frame, not per second: the kiosk drives its display
// at a fixed rate and the fadeSpeed values are tuned against that rate.
func (r *Rig) animateStrobe(d *dynamicLight) {
	a := d.spec.Animation
	if a.TriggerChance <= 0 || a.MaxIntensity <= 0 || a.FadeSpeed <= 0 || a.FadeSpeed > 1 {
		return
	}

	if r.rng.Float32() < a.TriggerChance {
		d.light.SetIntensity(a.MaxIntensity)
		if len(a.Colors) > 0 {
			d.light.SetColor(a.Colors[r.rng.Intn(len(a.Colors))])
		}
		return
	}

	cur := d.light.Intensity()
	d.light.SetIntensity(cur + (d.baseIntensity-cur)*a.FadeSpeed)
}

// animateDisco places the light on a circle of the spec's radius around its
// base X/Z position at heightOffset, rotating at rotationSpeed. With
// targetMovement, the aim point follows a phase-shifted smaller circle at
// ground level.
func (r *Rig) animateDisco(d *dynamicLight, elapsed float32) {
	a := d.spec.Animation
	if a.Radius <= 0 || a.RotationSpeed == 0 {
		return
	}

	angle := elapsed * a.RotationSpeed
	d.light.SetPosition(common.Vec3{
		d.basePosition[0] + math32.Cos(angle)*a.Radius,
		d.basePosition[1] + a.HeightOffset,
		d.basePosition[2] + math32.Sin(angle)*a.Radius,
	})

	if a.TargetMovement {
		targetAngle := angle + discoTargetPhaseShift
		targetRadius := a.Radius * discoTargetRadiusFactor
		d.light.SetTarget(common.Vec3{
			d.basePosition[0] + math32.Cos(targetAngle)*targetRadius,
			0,
			d.basePosition[2] + math32.Sin(targetAngle)*targetRadius,
		})
	}
}

// animateExplosion spikes intensity to base*intensityMultiplier with
// probability triggerChance each frame, optionally jumping to a random
// offset within positionRange of the base position; otherwise it decays
// toward base like a strobe.
func (r *Rig) animateExplosion(d *dynamicLight) {
	a := d.spec.Animation
	if a.TriggerChance <= 0 || a.IntensityMultiplier <= 0 || a.FadeSpeed <= 0 || a.FadeSpeed > 1 {
		return
	}

	if r.rng.Float32() < a.TriggerChance {
		d.light.SetIntensity(d.baseIntensity * a.IntensityMultiplier)
		if a.RandomPosition {
			d.light.SetPosition(common.Vec3{
				d.basePosition[0] + (r.rng.Float32()-0.5)*a.PositionRange[0],
				d.basePosition[1] + (r.rng.Float32()-0.5)*a.PositionRange[1],
				d.basePosition[2] + (r.rng.Float32()-0.5)*a.PositionRange[2],
			})
		}
		return
	}

	cur := d.light.Intensity()
	d.light.SetIntensity(cur + (d.baseIntensity-cur)*a.FadeSpeed)
}

// animatePulse drives intensity through a deterministic sine wave:
//
//	intensity = base * lerp(rangeMin, rangeMax, (sin(2π(t·freq + phase)) + 1) / 2)
//
// Phase offsets let multiple pulse lights desynchronize.
func (r *Rig) animatePulse(d *dynamicLight, elapsed float32) {
	a := d.spec.Animation
	if a.Frequency <= 0 || a.IntensityRange == nil {
		return
	}

	wave := (math32.Sin(2*math32.Pi*(elapsed*a.Frequency+a.PhaseOffset)) + 1) / 2
	factor := common.Lerp(a.IntensityRange[0], a.IntensityRange[1], wave)
	d.light.SetIntensity(d.baseIntensity * factor)
}

// animateFlash is a cooldown-gated brightness spike. Timing is best-effort:
// the spike begins on the first frame at or after each cooldown boundary
// and holds for flashDuration, so actual period drifts by up to one frame.
func (r *Rig) animateFlash(d *dynamicLight, elapsed float32) {
	a := d.spec.Animation
	if a.Cooldown <= 0 || a.MaxIntensity <= 0 || a.FlashDuration <= 0 {
		return
	}

	if elapsed >= d.nextFlashAt {
		d.light.SetIntensity(a.MaxIntensity)
		d.flashUntil = elapsed + a.FlashDuration
		d.nextFlashAt = elapsed + a.Cooldown
		return
	}
	if elapsed >= d.flashUntil {
		d.light.SetIntensity(d.baseIntensity)
	}
}
