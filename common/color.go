package common

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with float32 components in [0, 1].
// Colors are plain values; they are converted to [3]float32 or packed vertex
// data at the GPU boundary.
type Color struct {
	R, G, B float32
}

// ColorFromHex parses a "#rrggbb" (or "rrggbb") hex string into a Color.
//
// Parameters:
//   - s: the hex color string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a valid hex color
func ColorFromHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}, nil
}

// MustColor parses a hex color string and panics on failure.
// Intended for compile-time constant tables and tests.
//
// Parameters:
//   - s: the hex color string
//
// Returns:
//   - Color: the parsed color
func MustColor(s string) Color {
	c, err := ColorFromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HSL builds a Color from hue (degrees, 0-360), saturation, and lightness.
//
// Parameters:
//   - h: hue in degrees
//   - s: saturation in [0, 1]
//   - l: lightness in [0, 1]
//
// Returns:
//   - Color: the resulting RGB color
func HSL(h, s, l float32) Color {
	c := colorful.Hsl(float64(h), float64(s), float64(l))
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// HSV builds a Color from hue (degrees, 0-360), saturation, and value.
//
// Parameters:
//   - h: hue in degrees
//   - s: saturation in [0, 1]
//   - v: value in [0, 1]
//
// Returns:
//   - Color: the resulting RGB color
func HSV(h, s, v float32) Color {
	c := colorful.Hsv(float64(h), float64(s), float64(v))
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// Lerp linearly interpolates between c and o by t in [0, 1].
//
// Parameters:
//   - o: the target color
//   - t: the interpolation factor
//
// Returns:
//   - Color: the interpolated color
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Scale multiplies all components by f.
//
// Parameters:
//   - f: the scale factor
//
// Returns:
//   - Color: the scaled color
func (c Color) Scale(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Array returns the color as a [3]float32 for GPU upload.
//
// Returns:
//   - [3]float32: the color as (r, g, b)
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// UnmarshalText implements encoding.TextUnmarshaler so Color fields can be
// written as "#rrggbb" hex strings in YAML mood catalogs.
//
// Parameters:
//   - text: the raw text to parse
//
// Returns:
//   - error: error if the text is not a valid hex color
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ColorFromHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
