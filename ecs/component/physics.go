package component

import "github.com/jakecoffman/cp"

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape stay nil until the physics system creates them.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Type       BodyType
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64

	// Force accumulates force in the body's local frame until the next step.
	Force cp.Vector

	RotationFrozen bool
	// Moment is the body's own moment of inertia, recorded when the body is
	// created so it can be restored after a freeze.
	Moment float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
