package component

// Input stores per-frame input state for an entity.
type Input struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool

	NextScenePressed       bool
	ToggleCollisionPressed bool
}

var InputComponent = NewComponent[Input]()
