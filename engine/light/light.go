// Package light defines the light source objects managed by the scene: the
// persistent ambient/key lights and the per-mood dynamic lights.
package light

import "github.com/groveworks/moodscape/common"

// Kind identifies the kind of light source.
type Kind int

const (
	// KindPoint emits in all directions from a position, attenuating with
	// distance up to a configurable cap. Used for fireflies, lanterns, and
	// explosion flashes.
	KindPoint Kind = iota

	// KindSpot emits in a cone from a position toward a target point,
	// attenuating with distance and with angle from the cone axis. Used for
	// disco sweeps and stage-style key accents. Spot lights participate in
	// shadow casting.
	KindSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	kind Kind
	name string

	position common.Vec3
	target   common.Vec3

	color     common.Color
	intensity float32

	distance float32
	decay    float32

	angle    float32 // spot cone half-angle in radians
	penumbra float32 // softness fraction of the cone edge, 0..1

	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are plain CPU-side state; the renderer marshals the scene's light
// list into GPU form each frame. Type-specific properties (cone angle for
// spot lights, for example) return zero values when not applicable.
type Light interface {
	// Kind returns the kind of light source.
	Kind() Kind

	// Name returns the light's identifier. For dynamic lights this is the
	// join key between the mood spec and the live object.
	Name() string

	// Position returns the world-space position of the light.
	Position() common.Vec3

	// Target returns the point a spot light aims at. Meaningless for
	// point lights.
	Target() common.Vec3

	// Color returns the RGB color of the light.
	Color() common.Color

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// Distance returns the maximum attenuation distance. Beyond this
	// distance the light contributes zero energy.
	Distance() float32

	// Decay returns the distance attenuation exponent.
	Decay() float32

	// Angle returns the spot cone half-angle in radians. Zero for
	// point lights.
	Angle() float32

	// Penumbra returns the spot edge softness fraction in [0, 1]. Zero for
	// point lights.
	Penumbra() float32

	// CastsShadows returns whether this light is eligible for shadow map
	// generation. Shadow passes are expensive; only spot lights enable this.
	CastsShadows() bool

	// SetPosition sets the world-space position of the light.
	SetPosition(p common.Vec3)

	// SetTarget sets the point a spot light aims at.
	SetTarget(t common.Vec3)

	// SetColor sets the RGB color of the light.
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified kind with sensible defaults
// and any provided options applied.
//
// Parameters:
//   - kind: the kind of light to create (point or spot)
//   - name: the light's identifier
//   - opts: variadic list of BuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(kind Kind, name string, opts ...BuilderOption) Light {
	l := &lightImpl{
		kind:      kind,
		name:      name,
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1.0,
		distance:  100.0,
		decay:     2.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Kind() Kind {
	return l.kind
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Target() common.Vec3 {
	return l.target
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.position = p
}

func (l *lightImpl) SetTarget(t common.Vec3) {
	l.target = t
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}
