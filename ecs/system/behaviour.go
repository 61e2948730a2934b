package system

import (
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"go.uber.org/zap"
)

// BehaviourSystem drives scripted behaviours. A script is activated on the
// first tick it is seen, receives collisions queued by the physics system in
// arrival order, then ticks.
type BehaviourSystem struct {
	log *zap.Logger
}

func NewBehaviourSystem(logger *zap.Logger) *BehaviourSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BehaviourSystem{log: logger}
}

func (b *BehaviourSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := delta(w)

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, script *component.Script) {
		if script.Behaviour == nil {
			return
		}
		if !script.Activated {
			script.Activated = true
			b.log.Debug("behaviour: activate", zap.Stringer("entity", e))
			script.Behaviour.OnActivate()
		}

		if events, ok := ecs.Get(w, e, component.CollisionEventsComponent.Kind()); ok && len(events.Pending) > 0 {
			pending := events.Pending
			events.Pending = nil
			for _, c := range pending {
				script.Behaviour.OnCollision(c)
			}
		}

		script.Behaviour.OnTick(dt)
	})
}
