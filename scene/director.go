package scene

import (
	"errors"
	"fmt"
)

var ErrSceneIndex = errors.New("scene: index out of range")

// Director tracks the ordered scene list and a requested load. Loads are
// applied by the game loop between frames via TakePending.
type Director struct {
	names   []string
	current int
	pending int
	hasLoad bool
}

func NewDirector(names []string, start int) (*Director, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no scenes", ErrSceneIndex)
	}
	if start < 0 || start >= len(names) {
		return nil, fmt.Errorf("%w: start %d of %d", ErrSceneIndex, start, len(names))
	}
	return &Director{
		names:   append([]string(nil), names...),
		current: start,
	}, nil
}

func (d *Director) Current() int {
	return d.current
}

func (d *Director) Count() int {
	return len(d.names)
}

func (d *Director) Name(i int) (string, error) {
	if i < 0 || i >= len(d.names) {
		return "", fmt.Errorf("%w: %d of %d", ErrSceneIndex, i, len(d.names))
	}
	return d.names[i], nil
}

// Load requests scene i. A later request in the same frame replaces an
// earlier one.
func (d *Director) Load(i int) error {
	if i < 0 || i >= len(d.names) {
		return fmt.Errorf("%w: %d of %d", ErrSceneIndex, i, len(d.names))
	}
	d.pending = i
	d.hasLoad = true
	return nil
}

// TakePending returns and clears the requested scene.
func (d *Director) TakePending() (int, bool) {
	if !d.hasLoad {
		return 0, false
	}
	d.hasLoad = false
	return d.pending, true
}

// SetCurrent records that scene i is now loaded.
func (d *Director) SetCurrent(i int) error {
	if i < 0 || i >= len(d.names) {
		return fmt.Errorf("%w: %d of %d", ErrSceneIndex, i, len(d.names))
	}
	d.current = i
	return nil
}
