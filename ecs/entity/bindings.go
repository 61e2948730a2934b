package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/common"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"go.uber.org/zap"
)

// Bindings adapt an entity's components to behaviour ports. Behaviours work
// in a Y-up frame with counter-clockwise degrees; components store screen
// space, Y down with clockwise radians.

type transformPort struct {
	w *ecs.World
	e ecs.Entity
}

func (p transformPort) Position() common.Vec3 {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}
	}
	return common.Vec3{X: t.X, Y: -t.Y, Z: t.Z}
}

func (p transformPort) SetPosition(v common.Vec3) {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X = v.X
	t.Y = -v.Y
	t.Z = v.Z
}

func (p transformPort) RotateZ(degrees float64) {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Rotation -= common.DegToRad(degrees)
	if body, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetAngle(t.Rotation)
	}
}

type bodyPort struct {
	w *ecs.World
	e ecs.Entity
}

func (p bodyPort) AddRelativeForce(f common.Vec3) {
	body, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	body.Force = body.Force.Add(cp.Vector{X: f.X, Y: -f.Y})
}

// FreezeRotation pins the body's angle by giving it infinite inertia. The
// real moment is restored on unfreeze.
func (p bodyPort) FreezeRotation(frozen bool) {
	body, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind())
	if !ok || body.RotationFrozen == frozen {
		return
	}
	body.RotationFrozen = frozen
	if body.Body == nil || body.Type != component.BodyDynamic {
		return
	}
	if frozen {
		body.Body.SetMoment(math.Inf(1))
		body.Body.SetAngularVelocity(0)
		return
	}
	if body.Moment > 0 {
		body.Body.SetMoment(body.Moment)
	}
}

type audioPort struct {
	w   *ecs.World
	e   ecs.Entity
	log *zap.Logger
}

func (p audioPort) PlayOneShot(clip string) {
	a, ok := ecs.Get(p.w, p.e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	i := a.Index(clip)
	if i < 0 || i >= len(a.Play) {
		p.log.Warn("audio: unknown clip", zap.String("clip", clip))
		return
	}
	a.Play[i] = true
	if i < len(a.Stop) {
		a.Stop[i] = false
	}
}

func (p audioPort) Stop() {
	a, ok := ecs.Get(p.w, p.e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	for i := range a.Play {
		a.Play[i] = false
	}
	for i := range a.Stop {
		a.Stop[i] = true
	}
}

// IsPlaying counts queued plays as playing so a clip is not requested twice
// before the audio system runs.
func (p audioPort) IsPlaying() bool {
	a, ok := ecs.Get(p.w, p.e, component.AudioComponent.Kind())
	if !ok {
		return false
	}
	for i := range a.Play {
		if a.Play[i] {
			return true
		}
	}
	for i, player := range a.Players {
		if player == nil || (i < len(a.Stop) && a.Stop[i]) {
			continue
		}
		if player.IsPlaying() {
			return true
		}
	}
	return false
}

type particlesPort struct {
	w    *ecs.World
	e    ecs.Entity
	name string
}

func (p particlesPort) emitter() *component.ParticleEmitter {
	particles, ok := ecs.Get(p.w, p.e, component.ParticlesComponent.Kind())
	if !ok {
		return nil
	}
	return particles.Emitter(p.name)
}

func (p particlesPort) Play() {
	if em := p.emitter(); em != nil {
		em.PlayReq = true
		em.StopReq = false
	}
}

func (p particlesPort) Stop() {
	if em := p.emitter(); em != nil {
		em.StopReq = true
		em.PlayReq = false
	}
}

type inputPort struct {
	w *ecs.World
	e ecs.Entity
}

func (p inputPort) Held(a behaviour.Action) bool {
	in, ok := ecs.Get(p.w, p.e, component.InputComponent.Kind())
	if !ok {
		return false
	}
	switch a {
	case behaviour.ActionThrust:
		return in.Thrust
	case behaviour.ActionRotateLeft:
		return in.RotateLeft
	case behaviour.ActionRotateRight:
		return in.RotateRight
	}
	return false
}

func (p inputPort) Pressed(a behaviour.Action) bool {
	in, ok := ecs.Get(p.w, p.e, component.InputComponent.Kind())
	if !ok {
		return false
	}
	switch a {
	case behaviour.ActionDebugNextScene:
		return in.NextScenePressed
	case behaviour.ActionDebugToggleCollision:
		return in.ToggleCollisionPressed
	}
	return false
}

// SceneLoader is the scene director as seen by the entity layer.
type SceneLoader interface {
	Current() int
	Count() int
	Load(index int) error
}

type scenesPort struct {
	loader SceneLoader
	log    *zap.Logger
}

// ScenesPort adapts a scene director to the behaviour port. Rejected loads
// are logged.
func ScenesPort(loader SceneLoader, logger *zap.Logger) behaviour.Scenes {
	if loader == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return scenesPort{loader: loader, log: logger}
}

func (s scenesPort) Current() int { return s.loader.Current() }

func (s scenesPort) Count() int { return s.loader.Count() }

func (s scenesPort) Load(index int) {
	if err := s.loader.Load(index); err != nil {
		s.log.Error("scene: load rejected", zap.Int("index", index), zap.Error(err))
		return
	}
	s.log.Info("scene: load requested", zap.Int("index", index))
}
