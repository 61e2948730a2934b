package component

import "image/color"

// Shape is a filled rectangle centered on the entity's transform.
type Shape struct {
	Width  float64
	Height float64
	Color  color.Color
	// Nose draws a triangle on the local up side, used for the rocket.
	Nose float64
}

var ShapeComponent = NewComponent[Shape]()
