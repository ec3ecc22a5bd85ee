// Package mood defines the declarative mood configuration model, the
// immutable catalog that maps mood names to configurations, and the manager
// that pushes a configuration into the live scene subsystems.
package mood

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/groveworks/moodscape/common"
)

// MaxParticleCount caps the per-system particle count so a single mood
// cannot blow the frame budget.
const MaxParticleCount = 5000

// Config is the full declarative configuration for one mood. Entries are
// created once at catalog load and never mutated afterwards; subsystems
// treat them as constants.
type Config struct {
	// Name is the mood's catalog key, set during catalog load.
	Name string `yaml:"-"`

	// Sky is the scene background color.
	Sky common.Color `yaml:"sky"`

	// Fog configures the scene's exponential fog.
	Fog FogSpec `yaml:"fog"`

	// Ambient configures the persistent ambient light.
	Ambient AmbientSpec `yaml:"ambient"`

	// KeyLight configures the persistent key light.
	KeyLight KeyLightSpec `yaml:"keyLight"`

	// Sun configures the visual sun marker that tracks the key light.
	Sun SunSpec `yaml:"sun"`

	// Ground is the terrain material base color.
	Ground common.Color `yaml:"ground"`

	// Vegetation configures tree/crop/ground material styling.
	Vegetation VegetationSpec `yaml:"vegetation"`

	// Bloom configures the persistent post-process bloom stage.
	Bloom BloomSpec `yaml:"bloom"`

	// Particles lists zero or more particle systems, in draw order.
	// A catalog entry may write a single mapping or a sequence.
	Particles ParticleList `yaml:"particles"`

	// Lights lists zero or more dynamic lights, keyed by unique name.
	Lights []LightSpec `yaml:"lights"`

	// UI carries accent colors for UI collaborators. The core only stores
	// and republishes these.
	UI UISpec `yaml:"ui"`

	// Background optionally animates the scene background instead of the
	// static Sky color.
	Background BackgroundSpec `yaml:"background"`
}

// FogSpec configures exponential scene fog.
type FogSpec struct {
	Color   common.Color `yaml:"color"`
	Density float32      `yaml:"density"`
}

// AmbientSpec configures the persistent ambient light.
type AmbientSpec struct {
	Color     common.Color `yaml:"color"`
	Intensity float32      `yaml:"intensity"`
}

// KeyLightSpec configures the persistent key light.
type KeyLightSpec struct {
	Color     common.Color `yaml:"color"`
	Intensity float32      `yaml:"intensity"`
	Position  common.Vec3  `yaml:"position"`
}

// SunSpec configures the visual sun marker.
type SunSpec struct {
	Visible bool         `yaml:"visible"`
	Color   common.Color `yaml:"color"`
}

// VegetationSpec configures vegetation material styling. The instanced
// vegetation materials themselves are owned by the placement collaborator;
// only their parameters are written.
type VegetationSpec struct {
	// Tree is the base color for tree instances.
	Tree common.Color `yaml:"tree"`

	// Crop is the base color for crop instances.
	Crop common.Color `yaml:"crop"`

	// PulsingColor drives tree/crop color through a slow hue cycle instead
	// of the fixed base colors.
	PulsingColor bool `yaml:"pulsingColor"`

	// EmissiveGlow drives a smooth breathing emissive intensity with a slow
	// emissive-hue cycle. When false, emissive intensity is forced to zero.
	EmissiveGlow bool `yaml:"emissiveGlow"`
}

// BloomSpec configures the persistent bloom post-process stage.
type BloomSpec struct {
	Threshold float32 `yaml:"threshold"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
}

// UISpec carries UI accent colors for out-of-core widgets.
type UISpec struct {
	Accent common.Color `yaml:"accent"`
	Text   common.Color `yaml:"text"`
}

// BackgroundAnimation selects the optional background animation mode.
type BackgroundAnimation int

const (
	// BackgroundStatic uses the mood's fixed Sky color.
	BackgroundStatic BackgroundAnimation = iota

	// BackgroundCyclingHue continuously cycles the background hue,
	// overriding the static Sky color each frame.
	BackgroundCyclingHue
)

// UnmarshalText parses "static" (or empty) and "cycling-hue".
func (b *BackgroundAnimation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "static":
		*b = BackgroundStatic
	case "cycling-hue":
		*b = BackgroundCyclingHue
	default:
		return fmt.Errorf("unknown background animation %q", string(text))
	}
	return nil
}

// BackgroundSpec optionally replaces the static background color with an
// animated one. Moods opt in through this field; the render loop never
// special-cases mood names.
type BackgroundSpec struct {
	// Animation selects the mode. Defaults to static.
	Animation BackgroundAnimation `yaml:"animation"`

	// Speed is the hue cycle rate in degrees per second.
	Speed float32 `yaml:"speed"`

	// Saturation and Lightness fix the non-hue HSL components of the cycle.
	Saturation float32 `yaml:"saturation"`
	Lightness  float32 `yaml:"lightness"`
}

// TextureType selects the procedurally generated particle texture.
type TextureType int

const (
	// TextureSparkle is a sharp bright core with fast radial falloff.
	TextureSparkle TextureType = iota

	// TextureSmoke is a soft broad radial falloff.
	TextureSmoke
)

// UnmarshalText parses "sparkle" and "smoke".
func (t *TextureType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "sparkle":
		*t = TextureSparkle
	case "smoke":
		*t = TextureSmoke
	default:
		return fmt.Errorf("unknown texture type %q", string(text))
	}
	return nil
}

// BlendMode selects how particle colors composite with the scene.
type BlendMode int

const (
	// BlendAdditive brightens (sparks, fire, glow).
	BlendAdditive BlendMode = iota

	// BlendNormal is standard alpha blending (smoke, mist).
	BlendNormal
)

// UnmarshalText parses "additive" and "normal".
func (b *BlendMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "additive":
		*b = BlendAdditive
	case "normal":
		*b = BlendNormal
	default:
		return fmt.Errorf("unknown blend mode %q", string(text))
	}
	return nil
}

// Direction is the particle travel direction along the vertical axis.
type Direction int

const (
	// DirectionUp recycles particles from the top of the spawn volume back
	// to height zero.
	DirectionUp Direction = iota

	// DirectionDown recycles particles from height zero back to the top.
	DirectionDown
)

// UnmarshalText parses "up" and "down".
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "up":
		*d = DirectionUp
	case "down":
		*d = DirectionDown
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}

// MaterialSpec configures a particle system's visual material.
type MaterialSpec struct {
	// Size is the point size, scalar or [min, max].
	Size Value `yaml:"size"`

	// Texture selects the procedural texture (sparkle or smoke).
	Texture TextureType `yaml:"texture"`

	// Blending selects additive or normal compositing.
	Blending BlendMode `yaml:"blending"`

	// DepthWrite controls whether particles write the depth buffer.
	DepthWrite bool `yaml:"depthWrite"`

	// Opacity is the material opacity, scalar or [min, max].
	Opacity Value `yaml:"opacity"`

	// Color is a single hex color, a palette for per-particle random picks,
	// or "rainbow" for per-particle random hues.
	Color ColorValue `yaml:"color"`
}

// BehaviorSpec configures a particle system's motion.
type BehaviorSpec struct {
	// SpawnArea is the spawn volume extent [x, y, z]. Horizontal extents
	// are centered at the origin; the vertical extent runs from 0 upward.
	SpawnArea common.Vec3 `yaml:"spawnArea"`

	// Velocity is a fixed vector or a [min, max] vector pair sampled
	// per particle.
	Velocity VecValue `yaml:"velocity"`

	// Direction is the travel direction used for wraparound recycling.
	Direction Direction `yaml:"direction"`
}

// ParticleSpec configures one particle point-cloud.
type ParticleSpec struct {
	Count    int          `yaml:"count"`
	Material MaterialSpec `yaml:"material"`
	Behavior BehaviorSpec `yaml:"behavior"`
}

// ParticleList is an ordered list of particle specs that accepts either a
// single YAML mapping or a sequence of mappings, so simple moods stay terse.
type ParticleList []ParticleSpec

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *ParticleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var one ParticleSpec
		if err := node.Decode(&one); err != nil {
			return err
		}
		*p = ParticleList{one}
		return nil
	case yaml.SequenceNode:
		var many []ParticleSpec
		if err := node.Decode(&many); err != nil {
			return err
		}
		*p = ParticleList(many)
		return nil
	default:
		return fmt.Errorf("particles must be a mapping or a sequence of mappings")
	}
}

// LightKind selects the dynamic light type.
type LightKind int

const (
	// LightSpot is a cone light with angle/penumbra geometry.
	LightSpot LightKind = iota

	// LightPoint is an omnidirectional light with a distance cap.
	LightPoint
)

// UnmarshalText parses "spot" and "point".
func (k *LightKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "spot":
		*k = LightSpot
	case "point":
		*k = LightPoint
	default:
		return fmt.Errorf("unknown light type %q", string(text))
	}
	return nil
}

// AnimMode selects the per-frame procedural animation applied to a
// dynamic light.
type AnimMode int

const (
	// AnimStrobe randomly snaps intensity to a maximum and decays back.
	AnimStrobe AnimMode = iota

	// AnimDisco rotates the light on a circle around its base position.
	AnimDisco

	// AnimExplosion randomly spikes intensity and optionally jumps position.
	AnimExplosion

	// AnimPulse drives intensity through a deterministic sine wave.
	AnimPulse

	// AnimFlash is a cooldown-gated brightness spike. Best-effort timing,
	// not frame-exact.
	AnimFlash
)

// UnmarshalText parses the animation mode names.
func (m *AnimMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "strobe":
		*m = AnimStrobe
	case "disco":
		*m = AnimDisco
	case "explosion":
		*m = AnimExplosion
	case "pulse":
		*m = AnimPulse
	case "flash":
		*m = AnimFlash
	default:
		return fmt.Errorf("unknown animation mode %q", string(text))
	}
	return nil
}

// AnimationSpec is the per-mode parameter bag for an animated dynamic
// light. Only the fields relevant to the declared Mode are read; a bag
// missing a required field for its mode causes that light's animation to be
// skipped each frame rather than failing the render loop.
type AnimationSpec struct {
	Enabled bool     `yaml:"enabled"`
	Mode    AnimMode `yaml:"mode"`

	// Strobe / explosion.
	TriggerChance float32        `yaml:"triggerChance"`
	FadeSpeed     float32        `yaml:"fadeSpeed"`
	MaxIntensity  float32        `yaml:"maxIntensity"`
	Colors        []common.Color `yaml:"colors"`

	// Disco.
	RotationSpeed  float32 `yaml:"rotationSpeed"`
	Radius         float32 `yaml:"radius"`
	HeightOffset   float32 `yaml:"heightOffset"`
	TargetMovement bool    `yaml:"targetMovement"`

	// Explosion.
	IntensityMultiplier float32     `yaml:"intensityMultiplier"`
	RandomPosition      bool        `yaml:"randomPosition"`
	PositionRange       common.Vec3 `yaml:"positionRange"`

	// Pulse.
	Frequency      float32     `yaml:"frequency"`
	PhaseOffset    float32     `yaml:"phaseOffset"`
	IntensityRange *[2]float32 `yaml:"intensityRange"`

	// Flash.
	Cooldown      float32 `yaml:"cooldown"`
	FlashDuration float32 `yaml:"flashDuration"`
}

// LightSpec configures one dynamic light. Name is the join key between the
// spec and the live light object across mood switches.
type LightSpec struct {
	Name string    `yaml:"name"`
	Type LightKind `yaml:"type"`

	// Color is a single color or a palette for animated color picking.
	Color ColorValue `yaml:"color"`

	// Intensity is scalar or [min, max]; creation uses the first element.
	Intensity Value `yaml:"intensity"`

	// Spot geometry.
	Angle    float32 `yaml:"angle"`
	Penumbra float32 `yaml:"penumbra"`

	// Point geometry.
	Distance float32 `yaml:"distance"`

	Decay float32 `yaml:"decay"`

	// Position is a fixed vector or a [from, to] span; creation uses the
	// first element.
	Position VecValue `yaml:"position"`

	// Animation optionally animates the light every frame.
	Animation *AnimationSpec `yaml:"animation"`
}

// Animated reports whether the spec declares an enabled animation.
func (s *LightSpec) Animated() bool {
	return s.Animation != nil && s.Animation.Enabled
}
