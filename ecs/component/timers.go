package component

import "github.com/milk9111/rocketflight/timer"

// Timers holds the scene's deferred callbacks. Dropping the world drops them.
type Timers struct {
	Queue *timer.Queue
}

var TimersComponent = NewComponent[Timers]()
