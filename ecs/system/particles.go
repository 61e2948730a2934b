package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

// ParticleSystem spawns, moves and expires particles for every emitter.
// Particles live in world space once spawned.
type ParticleSystem struct {
	rng *rand.Rand
}

func NewParticleSystem(seed uint64) *ParticleSystem {
	return &ParticleSystem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (ps *ParticleSystem) Update(w *ecs.World) {
	dt := delta(w)
	ecs.ForEach2(w, component.ParticlesComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, particles *component.Particles, transform *component.Transform) {
		for i := range particles.Emitters {
			ps.updateEmitter(&particles.Emitters[i], transform, dt)
		}
	})
}

func (ps *ParticleSystem) updateEmitter(em *component.ParticleEmitter, transform *component.Transform, dt float64) {
	if em.StopReq {
		em.Playing = false
		em.StopReq = false
		em.PlayReq = false
	}
	if em.PlayReq {
		em.PlayReq = false
		if !em.Playing {
			em.Playing = true
			em.Elapsed = 0
			em.Carry = 0
			for n := 0; n < em.Burst; n++ {
				ps.spawn(em, transform)
			}
		}
	}

	if em.Playing {
		em.Elapsed += dt
		if em.Rate > 0 {
			em.Carry += em.Rate * dt
			for em.Carry >= 1 {
				em.Carry--
				ps.spawn(em, transform)
			}
		}
		if !em.Loop && em.Duration > 0 && em.Elapsed >= em.Duration {
			em.Playing = false
		}
	}

	alive := em.Particles[:0]
	for _, p := range em.Particles {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		alive = append(alive, p)
	}
	em.Particles = alive
}

func (ps *ParticleSystem) spawn(em *component.ParticleEmitter, transform *component.Transform) {
	sin, cos := math.Sincos(transform.Rotation)

	ox, oy := em.OffsetX, em.OffsetY
	x := transform.X + ox*cos - oy*sin
	y := transform.Y + ox*sin + oy*cos

	angle := transform.Rotation + em.Direction + (ps.rng.Float64()*2-1)*em.Spread
	// Direction 0 points along local +Y, which is down the screen.
	dirX := -math.Sin(angle)
	dirY := math.Cos(angle)
	speed := em.Speed * (0.75 + ps.rng.Float64()*0.5)

	life := em.Lifetime
	if life <= 0 {
		life = 0.5
	}
	em.Particles = append(em.Particles, component.Particle{
		X:    x,
		Y:    y,
		VX:   dirX * speed,
		VY:   dirY * speed,
		Life: life * (0.75 + ps.rng.Float64()*0.5),
	})
}
