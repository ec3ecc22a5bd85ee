package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromHex(t *testing.T) {
	c, err := ColorFromHex("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-3)
	assert.InDelta(t, 0.5, c.G, 2e-3)
	assert.InDelta(t, 0.0, c.B, 1e-3)

	// The leading hash is optional.
	bare, err := ColorFromHex("ff8000")
	require.NoError(t, err)
	assert.Equal(t, c, bare)

	_, err = ColorFromHex("#zzzzzz")
	assert.Error(t, err)
}

func TestColorYAMLText(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#00ff00")))
	assert.InDelta(t, 1.0, c.G, 1e-3)

	assert.Error(t, c.UnmarshalText([]byte("green")))
}

func TestHSLPrimaries(t *testing.T) {
	red := HSL(0, 1, 0.5)
	assert.InDelta(t, 1.0, red.R, 1e-3)
	assert.InDelta(t, 0.0, red.G, 1e-3)

	green := HSL(120, 1, 0.5)
	assert.InDelta(t, 1.0, green.G, 1e-3)

	gray := HSL(200, 0, 0.5)
	assert.InDelta(t, gray.R, gray.G, 1e-3)
	assert.InDelta(t, gray.G, gray.B, 1e-3)
}

func TestHSVFullValueHitsMaxChannel(t *testing.T) {
	for _, hue := range []float32{0, 45, 123, 270, 359} {
		c := HSV(hue, 1, 1)
		max := c.R
		if c.G > max {
			max = c.G
		}
		if c.B > max {
			max = c.B
		}
		assert.InDelta(t, 1.0, max, 1e-3, "hue %v", hue)
	}
}

func TestColorLerpAndScale(t *testing.T) {
	black := Color{}
	white := Color{R: 1, G: 1, B: 1}

	mid := black.Lerp(white, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-6)

	half := white.Scale(0.5)
	assert.InDelta(t, 0.5, half.G, 1e-6)

	assert.Equal(t, [3]float32{1, 1, 1}, white.Array())
}
