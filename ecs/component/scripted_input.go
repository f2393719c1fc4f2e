package component

import "github.com/milk9111/platformer/script"

// ScriptedInput replaces device input with a tengo script.
type ScriptedInput struct {
	Source *script.InputSource
}

var ScriptedInputComponent = NewComponent[ScriptedInput]()
