package effects

import (
	"math/rand"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/mood"
)

// velocityScale converts catalog-authored velocity units into world units
// per second. Catalogs author velocities at a tenth of world scale so the
// numbers stay small and readable.
const velocityScale = 10.0

// ParticleSystem is one live particle point-cloud. All simulation state is
// CPU-side; the renderer uploads the packed vertex stream each frame.
//
// Buffers are allocated once at creation and never resized. Recycling wraps
// a particle back to the start of its travel path instead of destroying it,
// so density stays visually constant without per-frame allocation.
type ParticleSystem struct {
	name string
	spec mood.ParticleSpec

	positions  []common.Vec3
	velocities []common.Vec3
	colors     []common.Color

	// Material fields resolved once at creation.
	size    float32
	opacity float32
}

// newParticleSystem allocates and seeds one particle system from its spec.
// Positions are seeded uniformly inside the spawn volume (horizontal extents
// centered at the origin, vertical extent from 0 upward) and velocities
// uniformly within the configured range.
func newParticleSystem(name string, spec mood.ParticleSpec, rng *rand.Rand) *ParticleSystem {
	p := &ParticleSystem{
		name:       name,
		spec:       spec,
		positions:  make([]common.Vec3, spec.Count),
		velocities: make([]common.Vec3, spec.Count),
		colors:     make([]common.Color, spec.Count),
	}

	// Ranged material fields resolve once per system, not per particle.
	sizeMin, sizeMax := spec.Material.Size.Bounds()
	p.size = common.Lerp(sizeMin, sizeMax, rng.Float32())
	opMin, opMax := spec.Material.Opacity.Bounds()
	p.opacity = common.Lerp(opMin, opMax, rng.Float32())

	area := spec.Behavior.SpawnArea
	velFrom, velTo := spec.Behavior.Velocity.Span()

	for i := 0; i < spec.Count; i++ {
		p.positions[i] = common.Vec3{
			(rng.Float32() - 0.5) * area[0],
			rng.Float32() * area[1],
			(rng.Float32() - 0.5) * area[2],
		}
		p.velocities[i] = common.Vec3{
			common.Lerp(velFrom[0], velTo[0], rng.Float32()),
			common.Lerp(velFrom[1], velTo[1], rng.Float32()),
			common.Lerp(velFrom[2], velTo[2], rng.Float32()),
		}
		p.colors[i] = resolveParticleColor(spec.Material.Color, rng)
	}

	return p
}

// resolveParticleColor assigns one particle's color at creation time. Rainbow
// picks an independent random hue at full saturation; a palette picks an
// independent uniformly-random entry; a single color applies uniformly.
// Colors are never re-rolled after creation.
func resolveParticleColor(cv mood.ColorValue, rng *rand.Rand) common.Color {
	switch cv.Kind() {
	case mood.ColorRainbow:
		return common.HSV(rng.Float32()*360, 1, 1)
	case mood.ColorPalette:
		palette := cv.Colors()
		if len(palette) == 0 {
			return common.Color{R: 1, G: 1, B: 1}
		}
		return palette[rng.Intn(len(palette))]
	default:
		return cv.First()
	}
}

// Name implements scene.Object.
func (p *ParticleSystem) Name() string {
	return p.name
}

// Count returns the particle count. It never changes after creation.
func (p *ParticleSystem) Count() int {
	return p.spec.Count
}

// Size returns the creation-resolved point size.
func (p *ParticleSystem) Size() float32 {
	return p.size
}

// Opacity returns the creation-resolved material opacity.
func (p *ParticleSystem) Opacity() float32 {
	return p.opacity
}

// Position returns particle i's current position.
func (p *ParticleSystem) Position(i int) common.Vec3 {
	return p.positions[i]
}

// ColorOf returns particle i's creation-assigned color.
func (p *ParticleSystem) ColorOf(i int) common.Color {
	return p.colors[i]
}

// advance integrates every particle by one frame and recycles particles that
// leave the spawn volume vertically: an up-moving system wraps from the top
// back to height 0, a down-moving system wraps from height 0 back to the top.
func (p *ParticleSystem) advance(deltaTime float32) {
	top := p.spec.Behavior.SpawnArea[1]
	down := p.spec.Behavior.Direction == mood.DirectionDown
	step := deltaTime * velocityScale

	for i := range p.positions {
		p.positions[i][0] += p.velocities[i][0] * step
		p.positions[i][1] += p.velocities[i][1] * step
		p.positions[i][2] += p.velocities[i][2] * step

		if down {
			if p.positions[i][1] < 0 {
				p.positions[i][1] = top
			}
		} else if p.positions[i][1] > top {
			p.positions[i][1] = 0
		}
	}
}

// vertexFloats is the packed per-particle vertex layout: position (3),
// color (3), size (1), opacity (1).
const vertexFloats = 8

// packVertices appends the system's packed vertex stream to dst and returns
// the extended slice. The stream length is always Count()*vertexFloats.
func (p *ParticleSystem) packVertices(dst []float32) []float32 {
	for i := range p.positions {
		dst = append(dst,
			p.positions[i][0], p.positions[i][1], p.positions[i][2],
			p.colors[i].R, p.colors[i].G, p.colors[i].B,
			p.size, p.opacity,
		)
	}
	return dst
}
