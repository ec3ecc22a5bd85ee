package light

import "github.com/groveworks/moodscape/common"

// BuilderOption is a function that configures a Light instance during
// construction.
type BuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of
// the light.
//
// Parameters:
//   - p: the position vector
//
// Returns:
//   - BuilderOption: a function that applies the position option
func WithPosition(p common.Vec3) BuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithTarget is an option builder that sets the point a spot light aims at.
//
// Parameters:
//   - t: the target point
//
// Returns:
//   - BuilderOption: a function that applies the target option
func WithTarget(t common.Vec3) BuilderOption {
	return func(l *lightImpl) {
		l.target = t
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - BuilderOption: a function that applies the color option
func WithColor(c common.Color) BuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity
// multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - BuilderOption: a function that applies the intensity option
func WithIntensity(intensity float32) BuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance is an option builder that sets the maximum attenuation
// distance.
//
// Parameters:
//   - distance: the distance cap
//
// Returns:
//   - BuilderOption: a function that applies the distance option
func WithDistance(distance float32) BuilderOption {
	return func(l *lightImpl) {
		l.distance = distance
	}
}

// WithDecay is an option builder that sets the distance attenuation
// exponent.
//
// Parameters:
//   - decay: the decay exponent
//
// Returns:
//   - BuilderOption: a function that applies the decay option
func WithDecay(decay float32) BuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithCone is an option builder that sets a spot light's cone half-angle
// (radians) and penumbra softness fraction.
//
// Parameters:
//   - angle: cone half-angle in radians
//   - penumbra: edge softness in [0, 1]
//
// Returns:
//   - BuilderOption: a function that applies the cone option
func WithCone(angle, penumbra float32) BuilderOption {
	return func(l *lightImpl) {
		l.angle = angle
		l.penumbra = penumbra
	}
}

// WithCastsShadows is an option builder that sets whether the light is
// eligible for shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - BuilderOption: a function that applies the shadow casting option
func WithCastsShadows(castsShadows bool) BuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
