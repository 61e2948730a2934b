package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/milk9111/rocketflight/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) (*ecs.World, *timer.Queue) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	q := timer.NewQueue()
	require.NoError(t, ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{}))
	require.NoError(t, ecs.Add(w, e, component.TimersComponent.Kind(), &component.Timers{Queue: q}))
	return w, q
}

func TestClockAndTimerSystems(t *testing.T) {
	w, q := newTestWorld(t)
	s := ecs.NewScheduler(NewClockSystem(10), NewTimerSystem())

	fired := 0
	q.After(0.25, func() { fired++ })

	s.Update(w)
	s.Update(w)
	assert.Equal(t, 0, fired)
	s.Update(w)
	assert.Equal(t, 1, fired)
	s.Update(w)
	assert.Equal(t, 1, fired, "timers fire once")

	e, ok := ecs.First(w, component.ClockComponent.Kind())
	require.True(t, ok)
	clock, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	assert.Equal(t, 4, clock.Frame)
	assert.InDelta(t, 0.4, clock.Elapsed, 1e-9)
	assert.InDelta(t, 0.1, clock.Delta, 1e-12)
}

func TestClockDefaultsToSixtyTPS(t *testing.T) {
	w, _ := newTestWorld(t)
	NewClockSystem(0).Update(w)
	assert.InDelta(t, 1.0/60, delta(w), 1e-12)
}

type recordingBehaviour struct {
	calls []string
}

func (r *recordingBehaviour) OnActivate() { r.calls = append(r.calls, "activate") }

func (r *recordingBehaviour) OnTick(float64) { r.calls = append(r.calls, "tick") }

func (r *recordingBehaviour) OnCollision(c behaviour.Category) {
	r.calls = append(r.calls, "collide:"+c.String())
}

func TestBehaviourSystemOrdering(t *testing.T) {
	w, _ := newTestWorld(t)
	rec := &recordingBehaviour{}
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Behaviour: rec}))
	events := &component.CollisionEvents{Pending: []behaviour.Category{behaviour.CategoryFinish, behaviour.CategoryObstacle}}
	require.NoError(t, ecs.Add(w, e, component.CollisionEventsComponent.Kind(), events))

	sys := NewBehaviourSystem(nil)
	sys.Update(w)
	sys.Update(w)

	assert.Equal(t, []string{"activate", "collide:finish", "collide:obstacle", "tick", "tick"}, rec.calls)
	assert.Empty(t, events.Pending)
}

func TestBehaviourSystemSkipsEmptyScript(t *testing.T) {
	w, _ := newTestWorld(t)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{}))
	assert.NotPanics(t, func() { NewBehaviourSystem(nil).Update(w) })
}

type fixedInput component.Input

func (f fixedInput) Poll() component.Input { return component.Input(f) }

func TestInputSystemCopiesFrame(t *testing.T) {
	w, _ := newTestWorld(t)
	e := ecs.CreateEntity(w)
	in := &component.Input{RotateRight: true}
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), in))

	NewInputSystemWithSource(fixedInput{Thrust: true, NextScenePressed: true}).Update(w)

	assert.True(t, in.Thrust)
	assert.True(t, in.NextScenePressed)
	assert.False(t, in.RotateRight)
}

func addBody(t *testing.T, w *ecs.World, x, y, width, height float64, typ component.BodyType, cat behaviour.Category) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:   typ,
		Width:  width,
		Height: height,
		Mass:   1,
	}))
	require.NoError(t, ecs.Add(w, e, component.CollisionCategoryComponent.Kind(), &component.CollisionCategory{Category: cat}))
	return e
}

func TestPhysicsDeliversCollisionCategory(t *testing.T) {
	cases := []struct {
		name     string
		category behaviour.Category
	}{
		{"finish", behaviour.CategoryFinish},
		{"friendly", behaviour.CategoryFriendly},
		{"obstacle", behaviour.CategoryObstacle},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t)
			rocket := addBody(t, w, 100, 100, 10, 10, component.BodyDynamic, behaviour.CategoryUntagged)
			events := &component.CollisionEvents{}
			require.NoError(t, ecs.Add(w, rocket, component.CollisionEventsComponent.Kind(), events))
			addBody(t, w, 100, 130, 100, 10, component.BodyStatic, tc.category)

			s := ecs.NewScheduler(NewClockSystem(60), NewPhysicsSystem(nil))
			for i := 0; i < 120 && len(events.Pending) == 0; i++ {
				s.Update(w)
			}

			require.NotEmpty(t, events.Pending)
			assert.Equal(t, tc.category, events.Pending[0])
		})
	}
}

func TestPhysicsDynamicBodyFallsAndSyncsTransform(t *testing.T) {
	w, _ := newTestWorld(t)
	e := addBody(t, w, 50, 50, 10, 10, component.BodyDynamic, behaviour.CategoryUntagged)
	s := ecs.NewScheduler(NewClockSystem(60), NewPhysicsSystem(nil))
	for i := 0; i < 30; i++ {
		s.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Greater(t, tr.Y, 50.0)
	assert.InDelta(t, 50, tr.X, 1e-6)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, body.Body)
	require.NotNil(t, body.Shape)
}

func TestPhysicsAppliesLocalForce(t *testing.T) {
	w, _ := newTestWorld(t)
	e := addBody(t, w, 50, 200, 10, 10, component.BodyDynamic, behaviour.CategoryUntagged)
	s := ecs.NewScheduler(NewClockSystem(60), NewPhysicsSystem(nil))
	s.Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	for i := 0; i < 30; i++ {
		body.Force = cp.Vector{Y: -1000}
		s.Update(w)
	}
	assert.Equal(t, cp.Vector{}, body.Force, "force is consumed by the step")

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Less(t, tr.Y, 200.0)
}

func TestPhysicsKinematicFollowsTransform(t *testing.T) {
	w, _ := newTestWorld(t)
	e := addBody(t, w, 10, 10, 10, 10, component.BodyKinematic, behaviour.CategoryObstacle)
	s := ecs.NewScheduler(NewClockSystem(60), NewPhysicsSystem(nil))
	s.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X = 40
	s.Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	assert.InDelta(t, 40, body.Body.Position().X, 1e-6)
	assert.InDelta(t, 40, tr.X, 1e-9, "kinematic transform is not overwritten")
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w, _ := newTestWorld(t)
	e := addBody(t, w, 10, 10, 10, 10, component.BodyDynamic, behaviour.CategoryUntagged)
	ps := NewPhysicsSystem(nil)
	s := ecs.NewScheduler(NewClockSystem(60), ps)
	s.Update(w)
	require.Len(t, ps.entities, 1)

	ecs.DestroyEntity(w, e)
	s.Update(w)
	assert.Empty(t, ps.entities)
	assert.Empty(t, ps.shapes)
}

func TestPhysicsLevelBoundsCountAsUntagged(t *testing.T) {
	w, _ := newTestWorld(t)
	level := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, level, component.LevelInfoComponent.Kind(), &component.LevelInfo{Width: 200, Height: 100, Gravity: 300}))

	rocket := addBody(t, w, 100, 50, 10, 10, component.BodyDynamic, behaviour.CategoryUntagged)
	events := &component.CollisionEvents{}
	require.NoError(t, ecs.Add(w, rocket, component.CollisionEventsComponent.Kind(), events))

	s := ecs.NewScheduler(NewClockSystem(60), NewPhysicsSystem(nil))
	for i := 0; i < 120 && len(events.Pending) == 0; i++ {
		s.Update(w)
	}
	require.NotEmpty(t, events.Pending)
	assert.Equal(t, behaviour.CategoryUntagged, events.Pending[0])
}

func TestParticleSystemLifecycle(t *testing.T) {
	w, _ := newTestWorld(t)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 10}))
	particles := &component.Particles{Emitters: []component.ParticleEmitter{
		{Name: "burst", Burst: 5, Lifetime: 0.1, Speed: 10, Duration: 0.05},
		{Name: "stream", Rate: 120, Lifetime: 1, Speed: 10, Loop: true},
	}}
	require.NoError(t, ecs.Add(w, e, component.ParticlesComponent.Kind(), particles))

	s := ecs.NewScheduler(NewClockSystem(60), NewParticleSystem(1))

	burst := particles.Emitter("burst")
	stream := particles.Emitter("stream")
	require.NotNil(t, burst)
	require.NotNil(t, stream)
	assert.Nil(t, particles.Emitter("missing"))

	burst.PlayReq = true
	stream.PlayReq = true
	s.Update(w)
	assert.Len(t, burst.Particles, 5)
	assert.True(t, stream.Playing)
	assert.NotEmpty(t, stream.Particles)

	for i := 0; i < 20; i++ {
		s.Update(w)
	}
	assert.False(t, burst.Playing, "one-shot emitters stop after their duration")
	assert.Empty(t, burst.Particles, "particles expire")

	stream.StopReq = true
	s.Update(w)
	assert.False(t, stream.Playing)
	count := len(stream.Particles)
	s.Update(w)
	assert.LessOrEqual(t, len(stream.Particles), count, "stopped emitters spawn nothing")
}

func TestAudioSystemClearsRequests(t *testing.T) {
	w, _ := newTestWorld(t)
	e := ecs.CreateEntity(w)
	a := &component.Audio{
		Names:   []string{"engine", "death"},
		Players: make([]*audio.Player, 2),
		Volume:  []float64{1, 1},
		Play:    []bool{true, false},
		Stop:    []bool{true, true},
	}
	require.NoError(t, ecs.Add(w, e, component.AudioComponent.Kind(), a))

	NewAudioSystem().Update(w)

	assert.Equal(t, []bool{false, false}, a.Play)
	assert.Equal(t, []bool{false, false}, a.Stop)
	assert.Equal(t, 1, a.Index("death"))
	assert.Equal(t, -1, a.Index("missing"))
}

func TestHUDLines(t *testing.T) {
	w, _ := newTestWorld(t)
	level := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, level, component.LevelInfoComponent.Kind(), &component.LevelInfo{Name: "Launch", Index: 1}))

	assert.Equal(t, []string{"scene 1: Launch", "rocket: none"}, HUDLines(w))
}
