package component

import "image/color"

type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64
	Life   float64
}

// ParticleEmitter spawns particles from an offset in its entity's local frame.
type ParticleEmitter struct {
	Name string

	// Rate is particles per second while playing; Burst is spawned once on Play.
	Rate     float64
	Burst    int
	Lifetime float64
	Speed    float64
	// Direction is the emission angle in radians in the local frame, 0 pointing
	// down the entity's local +Y axis.
	Direction float64
	Spread    float64
	Size      float64
	OffsetX   float64
	OffsetY   float64
	Color     color.Color
	// Duration stops a non-looping emitter after this many seconds.
	Duration float64
	Loop     bool

	Playing   bool
	PlayReq   bool
	StopReq   bool
	Elapsed   float64
	Carry     float64
	Particles []Particle
}

// Particles holds every emitter on an entity.
type Particles struct {
	Emitters []ParticleEmitter
}

var ParticlesComponent = NewComponent[Particles]()

// Emitter returns the named emitter, or nil.
func (p *Particles) Emitter(name string) *ParticleEmitter {
	if p == nil {
		return nil
	}
	for i := range p.Emitters {
		if p.Emitters[i].Name == name {
			return &p.Emitters[i]
		}
	}
	return nil
}
