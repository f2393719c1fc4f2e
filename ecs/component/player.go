package component

import "github.com/milk9111/platformer/motion"

// Motion holds the character controller driving an entity's body.
type Motion struct {
	Controller *motion.Controller
}

var MotionComponent = NewComponent[Motion]()
