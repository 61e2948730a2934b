package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio is a single playback channel with named clips. Play and Stop are
// requests drained by the audio system each tick.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

// Index returns the clip index for name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}
