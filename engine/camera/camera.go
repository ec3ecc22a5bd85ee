// Package camera holds the perspective camera and its auto-orbit controller.
// The kiosk has no user camera input; the orbit runs unattended.
package camera

import (
	"sync"

	"github.com/groveworks/moodscape/common"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu sync.Mutex

	position common.Vec3
	target   common.Vec3
	up       common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       [16]float32
	projectionMatrix [16]float32

	controller Controller
}

// Camera defines the interface for the camera system. The camera holds
// perspective settings and recomputes view/projection matrices from an
// attached Controller each frame via Update.
type Camera interface {
	// Position returns the camera's world-space position.
	Position() common.Vec3

	// Target returns the point the camera looks at.
	Target() common.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats
	// (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16
	// floats (column-major).
	ProjectionMatrix() [16]float32

	// Update advances the attached controller by deltaTime, reads the
	// resulting position/target, and recomputes matrices. Without a
	// controller only the matrices refresh.
	//
	// Parameters:
	//   - deltaTime: frame delta time in seconds
	Update(deltaTime float32)

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	// Called on window resize.
	//
	// Parameters:
	//   - aspect: the new aspect ratio
	SetAspect(aspect float32)

	// SetPosition sets the camera position directly. A subsequent controller
	// Update overrides it.
	SetPosition(p common.Vec3)

	// SetTarget sets the look-at target directly. A subsequent controller
	// Update overrides it.
	SetTarget(t common.Vec3)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera with sensible kiosk defaults and
// any provided options applied.
//
// Parameters:
//   - opts: variadic list of BuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(opts ...BuilderOption) Camera {
	c := &cameraImpl{
		position: common.Vec3{0, 200, 600},
		up:       common.Vec3{0, 1, 0},
		fov:      0.9,
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      5000,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recompute()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) Update(deltaTime float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller != nil {
		c.position, c.target = c.controller.Advance(deltaTime)
	}
	c.recompute()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.recompute()
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.recompute()
}

func (c *cameraImpl) SetTarget(t common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
	c.recompute()
}

// recompute rebuilds both matrices. Callers hold c.mu.
func (c *cameraImpl) recompute() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)
}
