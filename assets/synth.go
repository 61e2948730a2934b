package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/milk9111/rocketflight/prefabs"
)

// attack and release keep generated tones from clicking.
const (
	attack  = 0.01
	release = 0.05
)

// Synthesize renders a tone as 16-bit little-endian stereo PCM. The pitch
// sweeps linearly from Freq to FreqEnd.
func Synthesize(spec prefabs.SynthSpec, sampleRate int) ([]byte, error) {
	if spec.Duration <= 0 {
		return nil, fmt.Errorf("synth: duration must be positive, got %v", spec.Duration)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("synth: bad sample rate %d", sampleRate)
	}
	wave, err := waveform(spec.Wave)
	if err != nil {
		return nil, err
	}
	freqEnd := spec.FreqEnd
	if freqEnd == 0 {
		freqEnd = spec.Freq
	}

	n := int(spec.Duration * float64(sampleRate))
	out := make([]byte, n*4)
	rng := rand.New(rand.NewPCG(uint64(n), uint64(spec.Freq)))
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		freq := spec.Freq + (freqEnd-spec.Freq)*(t/spec.Duration)
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		v := wave(phase, rng) * envelope(t, spec.Duration)
		s := int16(v * math.MaxInt16 * 0.8)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out, nil
}

func envelope(t, duration float64) float64 {
	env := 1.0
	if t < attack {
		env = t / attack
	}
	if remain := duration - t; remain < release {
		env = math.Min(env, remain/release)
	}
	return env
}

func waveform(name string) (func(phase float64, rng *rand.Rand) float64, error) {
	switch name {
	case "", "sine":
		return func(p float64, _ *rand.Rand) float64 { return math.Sin(2 * math.Pi * p) }, nil
	case "square":
		return func(p float64, _ *rand.Rand) float64 {
			if p < 0.5 {
				return 1
			}
			return -1
		}, nil
	case "saw":
		return func(p float64, _ *rand.Rand) float64 { return 2*p - 1 }, nil
	case "noise":
		return func(_ float64, rng *rand.Rand) float64 { return rng.Float64()*2 - 1 }, nil
	default:
		return nil, fmt.Errorf("synth: unknown wave %q", name)
	}
}
