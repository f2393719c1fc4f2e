package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ScriptedInputSystem advances each entity's input script once per frame and
// writes the result into its Input component. A failing script is logged
// once and leaves the entity idle.
type ScriptedInputSystem struct {
	failed map[ecs.Entity]bool
}

func NewScriptedInputSystem() *ScriptedInputSystem {
	return &ScriptedInputSystem{failed: map[ecs.Entity]bool{}}
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ScriptedInputComponent.Kind(), func(e ecs.Entity, si *component.ScriptedInput) {
		input, ok := ecs.Get(w, e, component.InputComponent)
		if !ok || si.Source == nil {
			return
		}

		if s.failed[e] {
			input.MoveX, input.Jump, input.JumpPressed = 0, false, false
		} else if err := si.Source.Advance(); err != nil {
			log.Error("scripted input failed", "entity", e, "script", si.Source.Name(), "error", err)
			s.failed[e] = true
			input.MoveX, input.Jump, input.JumpPressed = 0, false, false
		} else {
			frame := si.Source.Frame()
			input.MoveX = frame.Move
			input.Jump = frame.JumpHeld
			input.JumpPressed = frame.JumpPressed
		}

		if err := ecs.Add(w, e, component.InputComponent, input); err != nil {
			log.Error("scripted input: update input", "entity", e, "error", err)
		}
	})
}

// Reset clears failure state, e.g. after a script reload.
func (s *ScriptedInputSystem) Reset(e ecs.Entity) {
	delete(s.failed, e)
}
