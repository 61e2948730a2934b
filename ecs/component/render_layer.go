package component

// RenderLayer orders drawing. Lower indexes draw first and ties fall back to
// entity order; entities without one sit on layer 0.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
