package system

import (
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// Update applies stop requests before play requests so a clip stopped and
// replayed in the same tick restarts.
func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Players)

		for i := 0; i < count && i < len(audioComp.Stop); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
			audioComp.Stop[i] = false
		}

		for i := 0; i < count && i < len(audioComp.Play); i++ {
			if !audioComp.Play[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil {
				if i < len(audioComp.Volume) {
					player.SetVolume(audioComp.Volume[i])
				}
				_ = player.Rewind()
				player.Play()
			}
			audioComp.Play[i] = false
		}
	})
}
