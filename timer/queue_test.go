package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFiresOnceAfterDelay(t *testing.T) {
	q := NewQueue()
	calls := 0
	q.After(1.0, func() { calls++ })

	steps := []struct {
		dt    float64
		calls int
		len   int
	}{
		{0.25, 0, 1},
		{0.5, 0, 1},
		{0.25, 1, 0},
		{5, 1, 0},
	}
	for i, s := range steps {
		q.Advance(s.dt)
		require.Equalf(t, s.calls, calls, "step %d", i)
		require.Equalf(t, s.len, q.Len(), "step %d", i)
	}
}

func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	var got []string
	q.After(0.3, func() { got = append(got, "c") })
	q.After(0.1, func() { got = append(got, "a") })
	q.After(0.2, func() { got = append(got, "b1") })
	q.After(0.2, func() { got = append(got, "b2") })

	q.Advance(1)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, got)
}

func TestQueueReentrantSchedule(t *testing.T) {
	q := NewQueue()
	fired := 0
	q.After(0.1, func() {
		fired++
		q.After(0, func() { fired++ })
	})

	q.Advance(0.1)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, q.Len())

	q.Advance(0)
	assert.Equal(t, 2, fired)
	assert.Equal(t, 0, q.Len())
}

func TestQueueNilSafe(t *testing.T) {
	var q *Queue
	q.After(1, func() {})
	q.Advance(1)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0.0, q.Now())
}

func TestQueueIgnoresNilAndClampsNegativeDelay(t *testing.T) {
	q := NewQueue()
	q.After(1, nil)
	assert.Equal(t, 0, q.Len())

	fired := false
	q.After(-3, func() { fired = true })
	q.Advance(0)
	assert.True(t, fired)
	assert.Equal(t, 0.0, q.Now())
}
