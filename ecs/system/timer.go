package system

import (
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

// TimerSystem fires due deferred callbacks.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (t *TimerSystem) Update(w *ecs.World) {
	dt := delta(w)
	ecs.ForEach(w, component.TimersComponent.Kind(), func(_ ecs.Entity, timers *component.Timers) {
		timers.Queue.Advance(dt)
	})
}
