// Package behaviour holds the per-object game logic driven by the ECS loop:
// the oscillating platform and the rocket controller. Behaviours only talk to
// the world through the ports in ports.go.
package behaviour

import (
	"errors"
	"fmt"
	"strings"
)

// Behaviour is the lifecycle every scripted object implements. The game loop
// calls OnActivate once before the first tick, then OnCollision for every
// contact reported since the previous tick, then OnTick.
type Behaviour interface {
	OnActivate()
	OnTick(dt float64)
	OnCollision(c Category)
}

// Category classifies what a collider is. The zero value is an untagged
// collider, which the rocket treats like any other obstacle.
type Category int

const (
	CategoryUntagged Category = iota
	CategoryFriendly
	CategoryFinish
	CategoryObstacle
)

var (
	ErrUnknownCategory = errors.New("behaviour: unknown category")
	ErrMissingPort     = errors.New("behaviour: missing port")
)

func (c Category) String() string {
	switch c {
	case CategoryUntagged:
		return "untagged"
	case CategoryFriendly:
		return "friendly"
	case CategoryFinish:
		return "finish"
	case CategoryObstacle:
		return "obstacle"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps prefab text onto a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "untagged":
		return CategoryUntagged, nil
	case "friendly":
		return CategoryFriendly, nil
	case "finish":
		return CategoryFinish, nil
	case "obstacle":
		return CategoryObstacle, nil
	default:
		return CategoryUntagged, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}
