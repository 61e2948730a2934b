package behaviour

import (
	"fmt"
	"math"

	"github.com/milk9111/rocketflight/common"
)

// periodEpsilon is the shortest period the oscillator will animate.
const periodEpsilon = 1e-6

const tau = math.Pi * 2

type OscillatorConfig struct {
	// Movement is the offset reached at the top of the wave.
	Movement common.Vec3
	// Period is the length of one full cycle in seconds.
	Period float64
}

// Oscillator moves its object back and forth between its starting position and
// starting position + Movement.
type Oscillator struct {
	cfg       OscillatorConfig
	transform Transform

	origin  common.Vec3
	elapsed float64
	factor  float64
}

var _ Behaviour = (*Oscillator)(nil)

func NewOscillator(cfg OscillatorConfig, transform Transform) (*Oscillator, error) {
	if transform == nil {
		return nil, fmt.Errorf("%w: oscillator transform", ErrMissingPort)
	}
	return &Oscillator{cfg: cfg, transform: transform}, nil
}

// OscillationFactor maps elapsed time onto [0, 1] along a sine wave.
func OscillationFactor(elapsed, period float64) float64 {
	cycles := elapsed / period
	raw := math.Sin(cycles * tau)
	return raw/2 + 0.5
}

// OscillatorPosition is the position an oscillator reaches after elapsed
// seconds.
func OscillatorPosition(origin, movement common.Vec3, period, elapsed float64) common.Vec3 {
	return origin.Add(movement.Scale(OscillationFactor(elapsed, period)))
}

func (o *Oscillator) OnActivate() {
	o.origin = o.transform.Position()
	o.elapsed = 0
	o.factor = 0
}

func (o *Oscillator) OnTick(dt float64) {
	if o.cfg.Period <= periodEpsilon {
		return
	}
	o.elapsed += dt
	o.factor = OscillationFactor(o.elapsed, o.cfg.Period)
	o.transform.SetPosition(o.origin.Add(o.cfg.Movement.Scale(o.factor)))
}

func (o *Oscillator) OnCollision(Category) {}

// Origin returns the position captured on activation.
func (o *Oscillator) Origin() common.Vec3 {
	return o.origin
}

// Factor returns the last oscillation factor: 0 is not moved, 1 fully moved.
func (o *Oscillator) Factor() float64 {
	return o.factor
}
