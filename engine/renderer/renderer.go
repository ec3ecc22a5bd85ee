// Package renderer defines the rendering abstraction the engine drives each
// frame and its WebGPU implementation. Subsystems keep all simulation state
// CPU-side and hand the renderer plain data, so the engine runs headless
// (renderer absent) in tests.
package renderer

import (
	"github.com/groveworks/moodscape/engine/scene"
)

// ParticleCloudDesc describes the GPU resources for one particle system.
type ParticleCloudDesc struct {
	// Name identifies the cloud in logs and profiles.
	Name string

	// Count is the fixed particle count. Vertex uploads must carry exactly
	// this many particles.
	Count int

	// TexturePixels is the RGBA sprite texture, TextureSize pixels square.
	TexturePixels []byte
	TextureSize   int

	// Additive selects additive compositing; false is normal alpha blending.
	Additive bool

	// DepthWrite controls whether the cloud writes the depth buffer.
	DepthWrite bool
}

// ParticleCloud is the GPU-side half of a particle system: a vertex buffer,
// a sprite texture, and the pipeline state to draw them.
type ParticleCloud interface {
	// Upload replaces the cloud's vertex stream. The stream is packed as
	// position (3), color (3), size (1), opacity (1) per particle and must
	// cover exactly the declared Count.
	Upload(vertices []float32)

	// Release frees the cloud's GPU resources. The cloud must not be used
	// afterwards.
	Release()
}

// Renderer draws the scene. Implementations own the GPU device, the surface,
// and the post-process chain.
type Renderer interface {
	// CreateParticleCloud allocates GPU resources for one particle system.
	//
	// Parameters:
	//   - desc: the cloud's fixed properties
	//
	// Returns:
	//   - ParticleCloud: the live cloud
	//   - error: allocation failure, e.g. a platform buffer limit
	CreateParticleCloud(desc ParticleCloudDesc) (ParticleCloud, error)

	// SetBloom reconfigures the persistent bloom post-process stage. The
	// stage is never torn down between moods; only its parameters change.
	SetBloom(threshold, strength, radius float32)

	// RenderFrame draws one frame of the scene through the camera view and
	// projection matrices and presents it. The scene's background color is
	// the clear color.
	//
	// Parameters:
	//   - sc: the scene to draw
	//   - view: the camera view matrix
	//   - projection: the camera projection matrix
	//
	// Returns:
	//   - error: a surface or device error for this frame
	RenderFrame(sc scene.Scene, view, projection [16]float32) error

	// Resize adjusts the surface and post-process targets to a new drawable
	// size.
	Resize(width, height uint32)

	// Dispose releases every GPU resource the renderer owns.
	Dispose()
}
