// Package lighting owns the scene's lighting rig: the persistent ambient
// and key lights, the visual sun marker, and the per-mood set of named
// dynamic lights with their frame-synchronous procedural animations.
package lighting

import (
	"log"
	"math/rand"
	"time"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/light"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/scene"
)

// dynamicLight pairs a live light object with the spec that created it and
// the creation-time base values animation decays back toward.
type dynamicLight struct {
	light light.Light
	spec  mood.LightSpec

	basePosition  common.Vec3
	baseIntensity float32

	// Flash bookkeeping. Best-effort timing: the trigger fires on the first
	// frame at or after the cooldown boundary, not at an exact instant.
	flashUntil  float32
	nextFlashAt float32
}

// Rig is the lighting subsystem. It applies a mood's static lighting
// parameters, fully replaces the dynamic light set on every mood switch,
// and advances per-frame light animations.
//
// The rig owns every light it creates until the next ApplyStatic or
// Dispose; nothing else removes them from the scene.
type Rig struct {
	scene scene.Scene
	rng   *rand.Rand

	key   light.Light
	sun   *scene.Marker
	sunID uint64

	dynamic map[string]*dynamicLight
}

// RigOption is a functional option for configuring a Rig.
type RigOption func(*Rig)

// WithRandSource is an option builder that sets the rig's random source,
// used by strobe and explosion triggers. Tests pass a fixed seed.
//
// Parameters:
//   - src: the random source
//
// Returns:
//   - RigOption: option function to apply
func WithRandSource(src rand.Source) RigOption {
	return func(r *Rig) {
		r.rng = rand.New(src)
	}
}

// NewRig creates the lighting rig and registers its persistent members (key
// light and sun marker) in the scene. The scene must not be nil.
//
// Parameters:
//   - sc: the scene to manage lights in
//   - opts: functional options to further configure the rig
//
// Returns:
//   - *Rig: the new rig
func NewRig(sc scene.Scene, opts ...RigOption) *Rig {
	if sc == nil {
		panic("lighting: NewRig requires a non-nil Scene")
	}

	r := &Rig{
		scene:   sc,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		dynamic: make(map[string]*dynamicLight),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.key = light.NewLight(light.KindSpot, "key",
		light.WithIntensity(1.0),
		light.WithDistance(2000),
		light.WithCone(0.9, 0.4),
		light.WithCastsShadows(true),
	)
	sc.AddLight(r.key)

	r.sun = scene.NewMarker("sun", 60)
	r.sunID = sc.Add(r.sun)

	return r
}

// ApplyStatic applies a mood's static lighting parameters: ambient and key
// light, sun marker, then a full teardown-before-create replacement of the
// dynamic light set. Lights whose spec declares a [min, max] intensity or a
// position span are created from the first element; animation resolves the
// rest per frame.
//
// Parameters:
//   - cfg: the mood configuration to apply
func (r *Rig) ApplyStatic(cfg *mood.Config) {
	r.scene.SetAmbient(cfg.Ambient.Color, cfg.Ambient.Intensity)

	r.key.SetColor(cfg.KeyLight.Color)
	r.key.SetIntensity(cfg.KeyLight.Intensity)
	r.key.SetPosition(cfg.KeyLight.Position)
	r.key.SetTarget(common.Vec3{})

	// The sun marker tracks the key light.
	r.sun.SetPosition(cfg.KeyLight.Position)
	r.sun.SetColor(cfg.Sun.Color)
	r.sun.SetVisible(cfg.Sun.Visible)

	// Teardown before create: no frame may observe two generations of
	// dynamic lights at once.
	for name, d := range r.dynamic {
		r.scene.RemoveLight(d.light)
		delete(r.dynamic, name)
	}

	for _, spec := range cfg.Lights {
		d := r.createDynamic(spec)
		if d == nil {
			continue
		}
		r.scene.AddLight(d.light)
		r.dynamic[spec.Name] = d
	}
}

// createDynamic instantiates one live light from its spec. Returns nil if
// the spec cannot be realized (logged, never fatal).
func (r *Rig) createDynamic(spec mood.LightSpec) *dynamicLight {
	basePos := spec.Position.Base()
	baseIntensity := spec.Intensity.Base()

	opts := []light.BuilderOption{
		light.WithPosition(basePos),
		light.WithColor(spec.Color.First()),
		light.WithIntensity(baseIntensity),
		light.WithDecay(spec.Decay),
	}

	var l light.Light
	switch spec.Type {
	case mood.LightSpot:
		opts = append(opts,
			light.WithDistance(spec.Distance),
			light.WithCone(spec.Angle, spec.Penumbra),
			light.WithCastsShadows(true),
			light.WithTarget(common.Vec3{basePos[0], 0, basePos[2]}),
		)
		l = light.NewLight(light.KindSpot, spec.Name, opts...)
	case mood.LightPoint:
		opts = append(opts, light.WithDistance(spec.Distance))
		l = light.NewLight(light.KindPoint, spec.Name, opts...)
	default:
		log.Printf("[Lighting] skipping light %q: unsupported type %d", spec.Name, spec.Type)
		return nil
	}

	return &dynamicLight{
		light:         l,
		spec:          spec,
		basePosition:  basePos,
		baseIntensity: baseIntensity,
	}
}

// Update advances every animated dynamic light by one frame. Lights without
// an enabled animation are left untouched. A malformed animation parameter
// bag skips that light for this frame only; the config may be fixed by a
// catalog reload and the light heals on its own.
//
// Parameters:
//   - elapsed: monotonic elapsed time in seconds
//   - cfg: the active mood configuration
func (r *Rig) Update(elapsed float32, cfg *mood.Config) {
	if cfg == nil {
		return
	}
	for _, d := range r.dynamic {
		if !d.spec.Animated() {
			continue
		}
		r.animate(d, elapsed)
	}
}

// Key returns the persistent key light.
func (r *Rig) Key() light.Light {
	return r.key
}

// Sun returns the sun marker.
func (r *Rig) Sun() *scene.Marker {
	return r.sun
}

// Dynamic returns the live dynamic light with the given name, or nil.
//
// Parameters:
//   - name: the light's spec name
//
// Returns:
//   - light.Light: the live light, or nil if not present
func (r *Rig) Dynamic(name string) light.Light {
	d, ok := r.dynamic[name]
	if !ok {
		return nil
	}
	return d.light
}

// DynamicCount returns the number of live dynamic lights.
func (r *Rig) DynamicCount() int {
	return len(r.dynamic)
}

// Dispose tears down every light the rig owns, returning the scene to its
// pre-rig baseline.
func (r *Rig) Dispose() {
	for name, d := range r.dynamic {
		r.scene.RemoveLight(d.light)
		delete(r.dynamic, name)
	}
	r.scene.RemoveLight(r.key)
	r.scene.Remove(r.sunID)
}
