package camera

import (
	"github.com/chewxy/math32"

	"github.com/groveworks/moodscape/common"
)

// Controller computes the camera's position and target each frame.
type Controller interface {
	// Advance moves the controller by deltaTime and returns the new camera
	// position and look-at target.
	//
	// Parameters:
	//   - deltaTime: frame delta time in seconds
	//
	// Returns:
	//   - common.Vec3: the camera position
	//   - common.Vec3: the look-at target
	Advance(deltaTime float32) (position, target common.Vec3)
}

// orbitController circles the camera slowly around a center point with a
// gentle vertical bob, damped so radius and height changes ease in rather
// than snap.
type orbitController struct {
	center common.Vec3

	radius float32
	height float32

	// Damped current values chase the configured radius/height.
	curRadius float32
	curHeight float32

	speed   float32 // radians per second
	bob     float32 // vertical bob amplitude
	damping float32 // fraction of remaining distance closed per second

	angle   float32
	elapsed float32
}

var _ Controller = &orbitController{}

// OrbitOption is a functional option for configuring the orbit controller.
type OrbitOption func(*orbitController)

// WithOrbitSpeed is an option builder that sets the angular speed.
//
// Parameters:
//   - speed: radians per second
//
// Returns:
//   - OrbitOption: option function to apply
func WithOrbitSpeed(speed float32) OrbitOption {
	return func(o *orbitController) {
		o.speed = speed
	}
}

// WithOrbitBob is an option builder that sets the vertical bob amplitude.
//
// Parameters:
//   - bob: amplitude in world units
//
// Returns:
//   - OrbitOption: option function to apply
func WithOrbitBob(bob float32) OrbitOption {
	return func(o *orbitController) {
		o.bob = bob
	}
}

// WithOrbitDamping is an option builder that sets how quickly radius and
// height changes ease in.
//
// Parameters:
//   - damping: fraction of remaining distance closed per second, in (0, 1]
//
// Returns:
//   - OrbitOption: option function to apply
func WithOrbitDamping(damping float32) OrbitOption {
	return func(o *orbitController) {
		o.damping = damping
	}
}

// NewOrbitController creates a slow damped orbit around center at the given
// radius and height.
//
// Parameters:
//   - center: the point to circle and look at
//   - radius: the orbit radius in world units
//   - height: the camera height above center
//   - opts: functional options to further configure the orbit
//
// Returns:
//   - Controller: the orbit controller
func NewOrbitController(center common.Vec3, radius, height float32, opts ...OrbitOption) Controller {
	o := &orbitController{
		center:    center,
		radius:    radius,
		height:    height,
		curRadius: radius,
		curHeight: height,
		speed:     0.05,
		bob:       15,
		damping:   0.8,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *orbitController) Advance(deltaTime float32) (common.Vec3, common.Vec3) {
	o.angle += o.speed * deltaTime
	o.elapsed += deltaTime

	ease := common.Clamp(o.damping*deltaTime, 0, 1)
	o.curRadius += (o.radius - o.curRadius) * ease
	o.curHeight += (o.height - o.curHeight) * ease

	bob := o.bob * math32.Sin(o.elapsed*0.2)
	position := common.Vec3{
		o.center[0] + math32.Cos(o.angle)*o.curRadius,
		o.center[1] + o.curHeight + bob,
		o.center[2] + math32.Sin(o.angle)*o.curRadius,
	}
	return position, o.center
}
