package behaviour

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/rocketflight/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscillatorPositionFormula(t *testing.T) {
	origin := common.Vec3{X: 10, Y: -4, Z: 1}
	movement := common.Vec3{X: 6, Y: 0, Z: -2}

	cases := []struct {
		name    string
		period  float64
		elapsed float64
	}{
		{"start", 2, 0},
		{"quarter", 2, 0.5},
		{"half", 2, 1},
		{"three_quarters", 2, 1.5},
		{"many_cycles", 3, 1234.567},
		{"short_period", 0.01, 0.37},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want := origin.Add(movement.Scale(math.Sin(2*math.Pi*c.elapsed/c.period)/2 + 0.5))
			got := OscillatorPosition(origin, movement, c.period, c.elapsed)
			assert.InDelta(t, want.X, got.X, 1e-9)
			assert.InDelta(t, want.Y, got.Y, 1e-9)
			assert.InDelta(t, want.Z, got.Z, 1e-9)
		})
	}
}

func TestOscillationFactorBounds(t *testing.T) {
	for _, period := range []float64{0.001, 0.5, 2, 17} {
		for i := 0; i < 500; i++ {
			elapsed := float64(i) * 0.0371
			f := OscillationFactor(elapsed, period)
			require.GreaterOrEqual(t, f, 0.0)
			require.LessOrEqual(t, f, 1.0)
		}
	}
	assert.InDelta(t, 0.5, OscillationFactor(0, 2), 1e-12)
	assert.InDelta(t, 1.0, OscillationFactor(0.5, 2), 1e-12)
	assert.InDelta(t, 0.0, OscillationFactor(1.5, 2), 1e-12)
}

func TestOscillatorStaysBetweenOriginAndMovement(t *testing.T) {
	tr := &fakeTransform{pos: common.Vec3{X: 100, Y: 50}}
	osc, err := NewOscillator(OscillatorConfig{Movement: common.Vec3{X: 40, Y: -20}, Period: 2}, tr)
	require.NoError(t, err)

	osc.OnActivate()
	for i := 0; i < 300; i++ {
		osc.OnTick(1.0 / 60)
		require.GreaterOrEqual(t, tr.pos.X, 100.0)
		require.LessOrEqual(t, tr.pos.X, 140.0)
		require.LessOrEqual(t, tr.pos.Y, 50.0)
		require.GreaterOrEqual(t, tr.pos.Y, 30.0)
	}
	assert.Equal(t, common.Vec3{X: 100, Y: 50}, osc.Origin())
}

func TestOscillatorTracksElapsedTime(t *testing.T) {
	tr := &fakeTransform{pos: common.Vec3{X: 1, Y: 2, Z: 3}}
	movement := common.Vec3{X: 10}
	osc, err := NewOscillator(OscillatorConfig{Movement: movement, Period: 4}, tr)
	require.NoError(t, err)
	osc.OnActivate()

	osc.OnTick(1)
	assert.InDelta(t, 11, tr.pos.X, 1e-9)
	assert.InDelta(t, 1.0, osc.Factor(), 1e-9)

	osc.OnTick(2)
	assert.InDelta(t, 1, tr.pos.X, 1e-9)
	assert.InDelta(t, 0.0, osc.Factor(), 1e-9)
}

func TestOscillatorDegeneratePeriodFreezes(t *testing.T) {
	for _, period := range []float64{0, 1e-9, -1} {
		tr := &fakeTransform{pos: common.Vec3{X: 7, Y: 8}}
		osc, err := NewOscillator(OscillatorConfig{Movement: common.Vec3{X: 5, Y: 5}, Period: period}, tr)
		require.NoError(t, err)
		osc.OnActivate()
		for i := 0; i < 10; i++ {
			osc.OnTick(0.1)
		}
		assert.Equal(t, common.Vec3{X: 7, Y: 8}, tr.pos)
		assert.Zero(t, tr.sets)
	}
}

func TestOscillatorReactivationRecapturesOrigin(t *testing.T) {
	tr := &fakeTransform{pos: common.Vec3{X: 0}}
	osc, err := NewOscillator(OscillatorConfig{Movement: common.Vec3{X: 10}, Period: 2}, tr)
	require.NoError(t, err)

	osc.OnActivate()
	osc.OnTick(0.3)
	moved := tr.pos

	osc.OnActivate()
	assert.Equal(t, moved, osc.Origin())
	osc.OnTick(0.3)
	assert.InDelta(t, moved.X+10*OscillationFactor(0.3, 2), tr.pos.X, 1e-9)
}

func TestOscillatorIgnoresCollisions(t *testing.T) {
	tr := &fakeTransform{}
	osc, err := NewOscillator(OscillatorConfig{Period: 1}, tr)
	require.NoError(t, err)
	osc.OnCollision(CategoryObstacle)
	assert.Zero(t, tr.sets)
}

func TestNewOscillatorRequiresTransform(t *testing.T) {
	_, err := NewOscillator(OscillatorConfig{Period: 1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPort))
}
