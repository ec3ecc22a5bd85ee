package engine

import (
	"time"

	"github.com/groveworks/moodscape/engine/renderer"
	"github.com/groveworks/moodscape/engine/window"
)

// BuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options.
type BuilderOption func(*engineImpl)

// WithWindow attaches the display window. Without one the engine runs
// headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - BuilderOption: option function to apply
func WithWindow(w window.Window) BuilderOption {
	return func(e *engineImpl) {
		e.window = w
	}
}

// WithRenderer attaches the renderer. Without one the engine simulates but
// never draws.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - BuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) BuilderOption {
	return func(e *engineImpl) {
		e.renderer = r
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - BuilderOption: option function to apply
func WithProfiling(enabled bool) BuilderOption {
	return func(e *engineImpl) {
		e.profilingEnabled = enabled
	}
}

// WithFrameLimit caps the frame rate in frames per second. Pass 0 to uncap
// (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - BuilderOption: option function to apply
func WithFrameLimit(fps float64) BuilderOption {
	return func(e *engineImpl) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Second / time.Duration(fps)
	}
}
