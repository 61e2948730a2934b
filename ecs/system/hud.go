package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

type rocketStatus interface {
	Phase() behaviour.Phase
	CollisionsEnabled() bool
}

// HUDSystem draws the debug overlay.
type HUDSystem struct {
	face    text.Face
	physics *PhysicsSystem
}

// NewHUDSystem builds the overlay. When physics is non-nil its colliders are
// outlined too.
func NewHUDSystem(physics *PhysicsSystem) *HUDSystem {
	return &HUDSystem{
		face:    text.NewGoXFace(basicfont.Face7x13),
		physics: physics,
	}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	if h.physics != nil {
		h.physics.DrawDebug(w, screen)
	}

	lines := HUDLines(w)
	lines = append(lines, fmt.Sprintf("fps: %.0f  tps: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(colornames.White)
	op.LineSpacing = 14
	text.Draw(screen, strings.Join(lines, "\n"), h.face, op)
}

// HUDLines describes the scene and the rocket's state.
func HUDLines(w *ecs.World) []string {
	var lines []string
	if e, ok := ecs.First(w, component.LevelInfoComponent.Kind()); ok {
		info, _ := ecs.Get(w, e, component.LevelInfoComponent.Kind())
		lines = append(lines, fmt.Sprintf("scene %d: %s", info.Index, info.Name))
	}

	rocket, ok := ecs.First(w, component.RocketTagComponent.Kind())
	if !ok {
		return append(lines, "rocket: none")
	}
	script, ok := ecs.Get(w, rocket, component.ScriptComponent.Kind())
	if !ok {
		return append(lines, "rocket: no script")
	}
	status, ok := script.Behaviour.(rocketStatus)
	if !ok {
		return append(lines, "rocket: no status")
	}
	collisions := "on"
	if !status.CollisionsEnabled() {
		collisions = "off"
	}
	lines = append(lines,
		fmt.Sprintf("rocket: %s", status.Phase()),
		fmt.Sprintf("collisions: %s", collisions),
	)
	if t, ok := ecs.Get(w, rocket, component.TransformComponent.Kind()); ok {
		lines = append(lines, fmt.Sprintf("pos: %.0f,%.0f", t.X, t.Y))
	}
	return lines
}
