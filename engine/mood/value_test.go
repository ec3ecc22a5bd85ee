package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValueUnmarshalScalar(t *testing.T) {
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte("1.5"), &v))
	assert.Equal(t, ValueScalar, v.Kind())
	assert.InDelta(t, 1.5, v.Base(), 1e-6)

	min, max := v.Bounds()
	assert.Equal(t, min, max)
}

func TestValueUnmarshalRange(t *testing.T) {
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte("[0.5, 1.5]"), &v))
	assert.Equal(t, ValueRange, v.Kind())
	assert.InDelta(t, 0.5, v.Base(), 1e-6, "creation resolves to the first element")

	min, max := v.Bounds()
	assert.InDelta(t, 0.5, min, 1e-6)
	assert.InDelta(t, 1.5, max, 1e-6)
}

func TestValueUnmarshalRejectsWrongArity(t *testing.T) {
	var v Value
	assert.Error(t, yaml.Unmarshal([]byte("[1, 2, 3]"), &v))
	assert.Error(t, yaml.Unmarshal([]byte("{a: 1}"), &v))
}

func TestVecValueUnmarshalFixed(t *testing.T) {
	var v VecValue
	require.NoError(t, yaml.Unmarshal([]byte("[1, 2, 3]"), &v))
	assert.Equal(t, VecFixed, v.Kind())
	assert.Equal(t, float32(1), v.Base()[0])
	assert.Equal(t, float32(3), v.Base()[2])
}

func TestVecValueUnmarshalSpan(t *testing.T) {
	var v VecValue
	require.NoError(t, yaml.Unmarshal([]byte("[[0, 0, 0], [1, 2, 3]]"), &v))
	assert.Equal(t, VecSpan, v.Kind())

	from, to := v.Span()
	assert.Equal(t, float32(0), from[1])
	assert.Equal(t, float32(2), to[1])
	assert.Equal(t, from, v.Base(), "creation resolves to the first triple")
}

func TestColorValueUnmarshalSingle(t *testing.T) {
	var c ColorValue
	require.NoError(t, yaml.Unmarshal([]byte(`"#ff0000"`), &c))
	assert.Equal(t, ColorSingle, c.Kind())
	assert.InDelta(t, 1.0, c.First().R, 1e-3)
	assert.InDelta(t, 0.0, c.First().G, 1e-3)
}

func TestColorValueUnmarshalPalette(t *testing.T) {
	var c ColorValue
	require.NoError(t, yaml.Unmarshal([]byte(`["#ff0000", "#00ff00"]`), &c))
	assert.Equal(t, ColorPalette, c.Kind())
	assert.Len(t, c.Colors(), 2)
}

func TestColorValueUnmarshalRainbow(t *testing.T) {
	var c ColorValue
	require.NoError(t, yaml.Unmarshal([]byte(`rainbow`), &c))
	assert.Equal(t, ColorRainbow, c.Kind())
	assert.Empty(t, c.Colors())

	white := c.First()
	assert.Equal(t, float32(1), white.R, "rainbow falls back to white at creation")
}

func TestColorValueUnmarshalRejectsGarbage(t *testing.T) {
	var c ColorValue
	assert.Error(t, yaml.Unmarshal([]byte(`"not-a-color"`), &c))
	assert.Error(t, yaml.Unmarshal([]byte(`[]`), &c))
}
