package component

import "github.com/milk9111/rocketflight/behaviour"

// CollisionCategory tells colliding bodies what this entity is.
type CollisionCategory struct {
	Category behaviour.Category
}

var CollisionCategoryComponent = NewComponent[CollisionCategory]()

// CollisionEvents queues the categories of bodies this entity started touching
// since its script last ran.
type CollisionEvents struct {
	Pending []behaviour.Category
}

var CollisionEventsComponent = NewComponent[CollisionEvents]()
