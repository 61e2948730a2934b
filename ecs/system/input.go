package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

// InputSource reports keyboard and gamepad state for one frame.
type InputSource interface {
	Poll() component.Input
}

type ebitenInput struct{}

func (ebitenInput) Poll() component.Input {
	in := component.Input{
		Thrust: ebiten.IsKeyPressed(ebiten.KeySpace) ||
			ebiten.IsKeyPressed(ebiten.KeyW) ||
			ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		RotateLeft:             ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RotateRight:            ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		NextScenePressed:       inpututil.IsKeyJustPressed(ebiten.KeyL),
		ToggleCollisionPressed: inpututil.IsKeyJustPressed(ebiten.KeyC),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		in.Thrust = in.Thrust || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.RotateLeft = in.RotateLeft || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		in.RotateRight = in.RotateRight || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
	}
	return in
}

// InputSystem copies the frame's input into every Input component.
type InputSystem struct {
	source InputSource
}

func NewInputSystem() *InputSystem {
	return &InputSystem{source: ebitenInput{}}
}

// NewInputSystemWithSource is used by tests and replays.
func NewInputSystemWithSource(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}
	frame := i.source.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = frame
	})
}
