package component

import "github.com/milk9111/rocketflight/behaviour"

// Script attaches a behaviour to an entity.
type Script struct {
	Behaviour behaviour.Behaviour
	Activated bool
}

var ScriptComponent = NewComponent[Script]()
