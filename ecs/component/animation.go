package component

import (
	"github.com/milk9111/platformer/motion"
	"github.com/tanema/gween"
)

type Animation struct {
	Current    string
	FrameTimer int
	Params     motion.AnimationParams
	// Squash plays a vertical scale curve on landing.
	Squash *gween.Tween
}

var AnimationComponent = NewComponent[Animation]()
