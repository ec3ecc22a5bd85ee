package camera

import "github.com/groveworks/moodscape/common"

// BuilderOption is a function that configures a Camera instance during
// construction.
type BuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the initial camera position.
//
// Parameters:
//   - p: the position vector
//
// Returns:
//   - BuilderOption: a function that applies the position option
func WithPosition(p common.Vec3) BuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithTarget is an option builder that sets the initial look-at target.
//
// Parameters:
//   - t: the target point
//
// Returns:
//   - BuilderOption: a function that applies the target option
func WithTarget(t common.Vec3) BuilderOption {
	return func(c *cameraImpl) {
		c.target = t
	}
}

// WithFov is an option builder that sets the vertical field of view.
//
// Parameters:
//   - fov: the field of view in radians
//
// Returns:
//   - BuilderOption: a function that applies the field of view option
func WithFov(fov float32) BuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect is an option builder that sets the aspect ratio.
//
// Parameters:
//   - aspect: the aspect ratio (width / height)
//
// Returns:
//   - BuilderOption: a function that applies the aspect option
func WithAspect(aspect float32) BuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping
// plane distances.
//
// Parameters:
//   - near: near plane distance, must be > 0
//   - far: far plane distance, must be > near
//
// Returns:
//   - BuilderOption: a function that applies the clip plane option
func WithClipPlanes(near, far float32) BuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithController is an option builder that attaches a movement controller.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - BuilderOption: a function that applies the controller option
func WithController(ctrl Controller) BuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
