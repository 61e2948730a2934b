package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Ops(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 0.5}

	assert.Equal(t, Vec3{X: 5, Y: 1, Z: 3.5}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: 3, Z: 2.5}, a.Sub(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, Vec3{}, a.Scale(0))
}

func TestAngleConversion(t *testing.T) {
	cases := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, c := range cases {
		assert.InDelta(t, c.rad, DegToRad(c.deg), 1e-12)
		assert.InDelta(t, c.deg, RadToDeg(c.rad), 1e-9)
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(0), Lerp(0, 10, 0))
	assert.Equal(t, float32(10), Lerp(0, 10, 1))
}
