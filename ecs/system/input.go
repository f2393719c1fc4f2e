package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const stickDeadzone = 0.2

// DeviceReader samples physical input once per frame.
type DeviceReader func() component.Input

// InputSystem copies device input onto every entity with an Input component,
// skipping entities driven by a script.
type InputSystem struct {
	read DeviceReader
}

func NewInputSystem() *InputSystem {
	return &InputSystem{read: ReadDevices}
}

// NewInputSystemWithReader lets tests and tools substitute the device.
func NewInputSystemWithReader(read DeviceReader) *InputSystem {
	return &InputSystem{read: read}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.read == nil {
		return
	}

	sampled := i.read()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if ecs.Has(w, e, component.ScriptedInputComponent) {
			input.Pause = sampled.Pause
			return
		}
		*input = sampled
	})
}

// ReadDevices reads keyboard and the first standard gamepad.
func ReadDevices() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		pause = pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	return component.Input{
		MoveX:       moveX,
		Jump:        jump,
		JumpPressed: jumpPressed,
		Pause:       pause,
	}
}
