package system

import (
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

// ClockSystem advances the world clock by a fixed step each tick.
type ClockSystem struct {
	step float64
}

func NewClockSystem(tps int) *ClockSystem {
	if tps <= 0 {
		tps = 60
	}
	return &ClockSystem{step: 1.0 / float64(tps)}
}

func (c *ClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ClockComponent.Kind(), func(_ ecs.Entity, clock *component.Clock) {
		clock.Delta = c.step
		clock.Elapsed += c.step
		clock.Frame++
	})
}

// delta returns the current tick length, or 0 if the world has no clock.
func delta(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	clock, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	return clock.Delta
}
