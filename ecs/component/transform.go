package component

// Transform places an entity in screen space. Y grows downward and Rotation
// is in radians, clockwise on screen.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
