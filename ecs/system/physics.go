package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"go.uber.org/zap"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSurface
)

// DefaultGravity is used when the level does not set one, in pixels per
// second squared, pointing down the screen.
const DefaultGravity = 150.0

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	log           *zap.Logger

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []contact
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	bounds bool
}

type contact struct {
	body  ecs.Entity
	other ecs.Entity
}

func NewPhysicsSystem(logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: DefaultGravity})
	return &PhysicsSystem{
		space:    space,
		log:      logger,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	dt := delta(w)

	ps.ensureHandlers()
	ps.syncGravity(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.pushKinematics(w, dt)
	ps.applyForces(w)

	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeSurface)
	handler.UserData = ps
	handler.BeginFunc = beginContact

	bodies := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	bodies.UserData = ps
	bodies.BeginFunc = beginContact

	ps.handlersReady = true
}

// beginContact records both directions of a new contact. Contacts are
// delivered after the step so the space is never mutated from a callback.
func beginContact(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.shapes[shapeA]
	b, okB := sys.shapes[shapeB]
	if !okA || !okB {
		return true
	}
	sys.contacts = append(sys.contacts, contact{body: a, other: b}, contact{body: b, other: a})
	return true
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	contacts := ps.contacts
	ps.contacts = nil
	for _, c := range contacts {
		events, ok := ecs.Get(w, c.body, component.CollisionEventsComponent.Kind())
		if !ok {
			continue
		}
		category := behaviour.CategoryUntagged
		if cat, ok := ecs.Get(w, c.other, component.CollisionCategoryComponent.Kind()); ok {
			category = cat.Category
		}
		events.Pending = append(events.Pending, category)
	}
}

func (ps *PhysicsSystem) syncGravity(w *ecs.World) {
	e, ok := ecs.First(w, component.LevelInfoComponent.Kind())
	if !ok {
		return
	}
	info, _ := ecs.Get(w, e, component.LevelInfoComponent.Kind())
	if info.Gravity != 0 {
		ps.space.SetGravity(cp.Vector{X: 0, Y: info.Gravity})
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, exists := ps.entities[e]; exists {
			return
		}

		info := ps.createBodyInfo(e, transform, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
		if bodyComp.RotationFrozen && bodyComp.Type == component.BodyDynamic {
			info.body.SetMoment(math.Inf(1))
		}
		ps.log.Debug("physics: create body",
			zap.Stringer("entity", e),
			zap.Int("type", int(bodyComp.Type)),
			zap.Float64("x", transform.X),
			zap.Float64("y", transform.Y))
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}

	var body *cp.Body
	switch bodyComp.Type {
	case component.BodyStatic:
		body = cp.NewStaticBody()
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		bodyComp.Moment = cp.MomentForBox(mass, width, height)
		body = cp.NewBody(mass, bodyComp.Moment)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	if bodyComp.Type == component.BodyDynamic {
		shape.SetCollisionType(collisionTypeBody)
	} else {
		shape.SetCollisionType(collisionTypeSurface)
	}
	ps.space.AddShape(shape)
	ps.shapes[shape] = e

	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

// syncWorldBounds walls the level in. The walls belong to the level entity,
// which has no collision category, so touching them counts as a crash.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelInfoComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	level, _ := ecs.Get(w, boundsEntity, component.LevelInfoComponent.Kind())

	worldW, worldH := level.Width, level.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}

	info := &bodyInfo{body: ps.space.StaticBody, bounds: true}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSurface)
		ps.space.AddShape(shape)
		ps.shapes[shape] = boundsEntity
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

// pushKinematics moves kinematic bodies to their transforms by velocity so
// resting bodies get carried along instead of tunnelling.
func (ps *PhysicsSystem) pushKinematics(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Type != component.BodyKinematic {
			return
		}
		target := cp.Vector{X: transform.X, Y: transform.Y}
		if dt <= 0 {
			bodyComp.Body.SetPosition(target)
			return
		}
		bodyComp.Body.SetVelocityVector(target.Sub(bodyComp.Body.Position()).Mult(1 / dt))
		bodyComp.Body.SetAngle(transform.Rotation)
	})
}

func (ps *PhysicsSystem) applyForces(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil || bodyComp.Type != component.BodyDynamic {
			bodyComp.Force = cp.Vector{}
			return
		}
		if bodyComp.Force.X != 0 || bodyComp.Force.Y != 0 {
			bodyComp.Body.ApplyForceAtLocalPoint(bodyComp.Force, cp.Vector{})
		}
		bodyComp.Force = cp.Vector{}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Type != component.BodyDynamic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) {
			if info.bounds && ecs.Has(w, e, component.LevelInfoComponent.Kind()) {
				continue
			}
			if !info.bounds && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				continue
			}
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if !info.bounds {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
