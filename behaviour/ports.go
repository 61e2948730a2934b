package behaviour

import "github.com/milk9111/rocketflight/common"

// Transform gives read/write access to an object's placement.
type Transform interface {
	Position() common.Vec3
	SetPosition(p common.Vec3)
	// RotateZ turns the object around its forward axis. Positive is
	// counter-clockwise.
	RotateZ(degrees float64)
}

// Body is the rigid body attached to an object.
type Body interface {
	// AddRelativeForce applies force expressed in the body's local frame.
	AddRelativeForce(f common.Vec3)
	// FreezeRotation stops the physics engine from changing the body's
	// rotation while frozen is true.
	FreezeRotation(frozen bool)
}

// AudioSource is a single stoppable playback channel.
type AudioSource interface {
	PlayOneShot(clip string)
	Stop()
	IsPlaying() bool
}

// Particles is one particle effect.
type Particles interface {
	Play()
	Stop()
}

// Action is a logical input.
type Action int

const (
	ActionThrust Action = iota
	ActionRotateLeft
	ActionRotateRight
	ActionDebugNextScene
	ActionDebugToggleCollision
)

// Input polls player input for the current frame.
type Input interface {
	// Held reports whether the action is held down this frame.
	Held(a Action) bool
	// Pressed reports whether the action went down this frame.
	Pressed(a Action) bool
}

// Scenes enumerates and loads scenes.
type Scenes interface {
	Current() int
	Count() int
	Load(index int)
}

// Scheduler runs a callback once after a delay in seconds.
type Scheduler interface {
	After(delay float64, fn func())
}
