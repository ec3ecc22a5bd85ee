package effects

import (
	"github.com/chewxy/math32"

	"github.com/groveworks/moodscape/engine/mood"
)

// particleTextureSize is the side length in pixels of the generated
// particle textures. 64 is plenty for point sprites.
const particleTextureSize = 64

// generateTexture builds the RGBA pixel data for a particle sprite as a
// radial gradient. Textures are generated procedurally instead of loaded
// from image assets so the effects subsystem has no asset-pipeline
// dependency for a purely visual element.
//
// Sparkle is a sharp bright core with fast falloff; smoke is a soft broad
// falloff.
//
// Parameters:
//   - kind: the texture type (sparkle or smoke)
//
// Returns:
//   - []byte: RGBA pixel data, 4 bytes per pixel, row-major
//   - int: the texture side length in pixels
func generateTexture(kind mood.TextureType) ([]byte, int) {
	size := particleTextureSize
	pixels := make([]byte, size*size*4)

	center := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) - center) / center
			dy := (float32(y) - center) / center
			dist := math32.Sqrt(dx*dx + dy*dy)

			var alpha float32
			switch kind {
			case mood.TextureSparkle:
				// Bright core, quartic falloff.
				falloff := 1 - dist
				if falloff < 0 {
					falloff = 0
				}
				alpha = falloff * falloff * falloff * falloff
			case mood.TextureSmoke:
				// Broad soft falloff.
				falloff := 1 - dist*0.8
				if falloff < 0 {
					falloff = 0
				}
				alpha = falloff * falloff * 0.6
			}

			i := (y*size + x) * 4
			pixels[i+0] = 255
			pixels[i+1] = 255
			pixels[i+2] = 255
			pixels[i+3] = byte(math32.Round(alpha * 255))
		}
	}

	return pixels, size
}

// SpriteTexture exposes the procedural sprite generator for billboards drawn
// outside the particle subsystem, such as the scene's markers.
//
// Parameters:
//   - kind: the texture type (sparkle or smoke)
//
// Returns:
//   - []byte: RGBA pixel data, 4 bytes per pixel, row-major
//   - int: the texture side length in pixels
func SpriteTexture(kind mood.TextureType) ([]byte, int) {
	return generateTexture(kind)
}
