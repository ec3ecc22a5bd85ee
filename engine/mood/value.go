package mood

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/groveworks/moodscape/common"
)

// ValueKind discriminates the shape of a numeric config field.
type ValueKind int

const (
	// ValueScalar is a single fixed number.
	ValueScalar ValueKind = iota

	// ValueRange is a [min, max] pair. Creation always resolves to the first
	// element; animation code resolves randomness or interpolation.
	ValueRange
)

// Value is a numeric mood-config field that catalogs may write either as a
// scalar ("1.5") or as a two-element range ("[0.5, 1.5]"). The tagged kind
// replaces shape-sniffing at every consumer.
type Value struct {
	kind ValueKind
	a, b float32
}

// Scalar returns a fixed Value.
func Scalar(v float32) Value {
	return Value{kind: ValueScalar, a: v, b: v}
}

// Range returns a [min, max] Value.
func Range(min, max float32) Value {
	return Value{kind: ValueRange, a: min, b: max}
}

// Kind returns the value's discriminator.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Base returns the creation-time resolution of the value: the scalar itself,
// or the first element of a range.
func (v Value) Base() float32 {
	return v.a
}

// Bounds returns the value's [min, max] interval. A scalar reports an
// interval of width zero.
func (v Value) Bounds() (min, max float32) {
	return v.a, v.b
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting either a scalar
// number or a two-element sequence.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float32
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		*v = Scalar(f)
		return nil
	case yaml.SequenceNode:
		var pair []float32
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("value range: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("value range must have exactly 2 elements, got %d", len(pair))
		}
		*v = Range(pair[0], pair[1])
		return nil
	default:
		return fmt.Errorf("value must be a number or a [min, max] pair")
	}
}

// VecValueKind discriminates the shape of a vector config field.
type VecValueKind int

const (
	// VecFixed is a single fixed vector.
	VecFixed VecValueKind = iota

	// VecSpan is a [from, to] pair of vectors for animated travel.
	VecSpan
)

// VecValue is a vector mood-config field written either as one [x, y, z]
// triple or as a pair of triples describing a travel span.
type VecValue struct {
	kind VecValueKind
	a, b common.Vec3
}

// FixedVec returns a fixed VecValue.
func FixedVec(v common.Vec3) VecValue {
	return VecValue{kind: VecFixed, a: v, b: v}
}

// SpanVec returns a [from, to] VecValue.
func SpanVec(from, to common.Vec3) VecValue {
	return VecValue{kind: VecSpan, a: from, b: to}
}

// Kind returns the vector value's discriminator.
func (v VecValue) Kind() VecValueKind {
	return v.kind
}

// Base returns the creation-time resolution: the fixed vector, or the first
// element of a span.
func (v VecValue) Base() common.Vec3 {
	return v.a
}

// Span returns the [from, to] pair. A fixed vector reports from == to.
func (v VecValue) Span() (from, to common.Vec3) {
	return v.a, v.b
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting [x, y, z] or
// [[x, y, z], [x, y, z]].
func (v *VecValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return fmt.Errorf("vector must be [x, y, z] or a pair of such triples")
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var pair []common.Vec3
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("vector span: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("vector span must have exactly 2 triples, got %d", len(pair))
		}
		*v = SpanVec(pair[0], pair[1])
		return nil
	}
	var vec common.Vec3
	if err := node.Decode(&vec); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	*v = FixedVec(vec)
	return nil
}

// ColorValueKind discriminates the shape of a color config field.
type ColorValueKind int

const (
	// ColorSingle applies one color uniformly.
	ColorSingle ColorValueKind = iota

	// ColorPalette assigns each consumer an independent uniformly-random
	// pick from the listed colors.
	ColorPalette

	// ColorRainbow assigns each consumer an independent random hue at full
	// saturation. Resolved once at creation, never re-rolled per frame.
	ColorRainbow
)

// ColorValue is a color mood-config field written as a single hex string, a
// list of hex strings, or the sentinel "rainbow".
type ColorValue struct {
	kind   ColorValueKind
	colors []common.Color
}

// SingleColor returns a uniform ColorValue.
func SingleColor(c common.Color) ColorValue {
	return ColorValue{kind: ColorSingle, colors: []common.Color{c}}
}

// Palette returns a random-pick ColorValue over the given colors.
func Palette(colors ...common.Color) ColorValue {
	return ColorValue{kind: ColorPalette, colors: colors}
}

// Rainbow returns the per-consumer random-hue ColorValue.
func Rainbow() ColorValue {
	return ColorValue{kind: ColorRainbow}
}

// Kind returns the color value's discriminator.
func (c ColorValue) Kind() ColorValueKind {
	return c.kind
}

// First returns the first color, or white when the value carries none
// (rainbow, or an empty palette).
func (c ColorValue) First() common.Color {
	if len(c.colors) == 0 {
		return common.Color{R: 1, G: 1, B: 1}
	}
	return c.colors[0]
}

// Colors returns the underlying color list. Empty for rainbow.
func (c ColorValue) Colors() []common.Color {
	return c.colors
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting "rainbow", a hex
// string, or a sequence of hex strings.
func (c *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "rainbow" {
			*c = Rainbow()
			return nil
		}
		parsed, err := common.ColorFromHex(node.Value)
		if err != nil {
			return err
		}
		*c = SingleColor(parsed)
		return nil
	case yaml.SequenceNode:
		var hexes []string
		if err := node.Decode(&hexes); err != nil {
			return fmt.Errorf("color list: %w", err)
		}
		if len(hexes) == 0 {
			return fmt.Errorf("color list must not be empty")
		}
		colors := make([]common.Color, 0, len(hexes))
		for _, h := range hexes {
			parsed, err := common.ColorFromHex(h)
			if err != nil {
				return err
			}
			colors = append(colors, parsed)
		}
		*c = Palette(colors...)
		return nil
	default:
		return fmt.Errorf("color must be a hex string, a list of hex strings, or \"rainbow\"")
	}
}
