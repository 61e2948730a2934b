package component

import "image/color"

// LevelInfo describes the loaded scene.
type LevelInfo struct {
	Name       string
	Index      int
	Width      float64
	Height     float64
	Gravity    float64
	Background color.Color
}

var LevelInfoComponent = NewComponent[LevelInfo]()
