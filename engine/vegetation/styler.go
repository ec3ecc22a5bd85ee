// Package vegetation styles the externally-owned vegetation and terrain
// materials per mood. Instance placement lives outside the engine; the
// placement collaborator hands over material handles and this subsystem only
// writes their color and emissive parameters.
package vegetation

import (
	"github.com/chewxy/math32"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/mood"
)

// Material is the shared parameter block of one instanced material. The
// placement collaborator owns the structs and the GPU plumbing behind them;
// the styler mutates the fields in place every frame.
type Material struct {
	Color             common.Color
	Emissive          common.Color
	EmissiveIntensity float32
}

// Cycle tuning. The hue cycles are deliberately slow, an order of magnitude
// below any strobe rate, so pulsing vegetation reads as alive rather than
// glitchy.
const (
	// hueCycleSpeed is the pulsing-color hue rate in degrees per second.
	hueCycleSpeed = 12.0

	// cropHuePhase shifts the crop hue 30% of a full cycle ahead of the
	// tree hue.
	cropHuePhase = 0.3 * 360

	// saturationBase/Swing and lightnessBase/Swing oscillate the non-hue
	// HSL components instead of fixing them.
	saturationBase  = 0.7
	saturationSwing = 0.2
	lightnessBase   = 0.5
	lightnessSwing  = 0.1

	// emissiveHueSpeed is the glow hue rate in degrees per second.
	emissiveHueSpeed = 8.0

	// Glow intensity multipliers. Ground glows faintest.
	treeGlowScale   = 0.6
	cropGlowScale   = 0.4
	groundGlowScale = 0.15
)

// Styler is the vegetation styling subsystem. It holds handles to the three
// externally-owned materials and rewrites their parameters per mood and
// per frame.
type Styler struct {
	tree   *Material
	crop   *Material
	ground *Material
}

// NewStyler creates the subsystem over the collaborator-owned materials. Any
// handle may be nil before the landscape is ready; nil materials are skipped.
//
// Parameters:
//   - tree: the instanced tree material
//   - crop: the instanced crop material
//   - ground: the terrain material
//
// Returns:
//   - *Styler: the new subsystem
func NewStyler(tree, crop, ground *Material) *Styler {
	return &Styler{tree: tree, crop: crop, ground: ground}
}

// SetMaterials replaces the material handles, typically when the landscape
// collaborator announces regenerated instances.
func (s *Styler) SetMaterials(tree, crop, ground *Material) {
	s.tree = tree
	s.crop = crop
	s.ground = ground
}

// ApplyStatic copies the mood's tree and crop base colors onto the instanced
// materials and the ground color onto the terrain material.
//
// Parameters:
//   - cfg: the mood configuration to apply
func (s *Styler) ApplyStatic(cfg *mood.Config) {
	if s.tree != nil {
		s.tree.Color = cfg.Vegetation.Tree
	}
	if s.crop != nil {
		s.crop.Color = cfg.Vegetation.Crop
	}
	if s.ground != nil {
		s.ground.Color = cfg.Ground
	}
}

// Update advances one frame of vegetation animation. With pulsingColor the
// tree hue cycles continuously and the crop hue follows phase-shifted, both
// with slowly oscillating saturation and lightness. With emissiveGlow the
// emissive intensity breathes smoothly under a slow emissive-hue cycle,
// strongest on trees and faintest on the ground. Without emissiveGlow the
// emissive intensity is forced to zero so no glow persists from a previous
// mood.
//
// Parameters:
//   - elapsed: monotonic elapsed time in seconds
//   - cfg: the active mood configuration
func (s *Styler) Update(elapsed float32, cfg *mood.Config) {
	if cfg == nil {
		return
	}

	if cfg.Vegetation.PulsingColor {
		sat := saturationBase + saturationSwing*math32.Sin(elapsed*0.5)
		light := lightnessBase + lightnessSwing*math32.Sin(elapsed*0.3)

		treeHue := math32.Mod(elapsed*hueCycleSpeed, 360)
		if s.tree != nil {
			s.tree.Color = common.HSL(treeHue, sat, light)
		}
		if s.crop != nil {
			s.crop.Color = common.HSL(math32.Mod(treeHue+cropHuePhase, 360), sat, light)
		}
	}

	if cfg.Vegetation.EmissiveGlow {
		breath := (math32.Sin(elapsed) + 1) / 2
		glow := common.HSL(math32.Mod(elapsed*emissiveHueSpeed, 360), 0.8, 0.5)

		apply := func(m *Material, scale float32) {
			if m == nil {
				return
			}
			m.Emissive = glow
			m.EmissiveIntensity = breath * scale
		}
		apply(s.tree, treeGlowScale)
		apply(s.crop, cropGlowScale)
		apply(s.ground, groundGlowScale)
	} else {
		for _, m := range []*Material{s.tree, s.crop, s.ground} {
			if m != nil {
				m.EmissiveIntensity = 0
			}
		}
	}
}
