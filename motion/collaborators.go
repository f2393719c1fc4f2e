package motion

import "github.com/milk9111/platformer/common"

// InputSource is polled once per render step.
type InputSource interface {
	SampleHorizontal() float64
	SampleJumpPressed() bool
	SampleJumpHeld() bool
}

// GroundSensor answers whether a circle at anchor overlaps ground geometry
// on any layer in layerMask.
type GroundSensor interface {
	QueryGroundContact(anchor common.Vec2, radius float64, layerMask uint32) bool
}

// RigidBody is the physics body the controller drives. The physics engine
// integrates position between fixed steps.
type RigidBody interface {
	Position() common.Vec2
	Velocity() common.Vec2
	SetVelocity(v common.Vec2)
}

// Presentation observes the controller. Nothing it does is read back.
type Presentation interface {
	Animate(params AnimationParams)
	FlipHorizontal()
}

// AnimationParams mirrors the animator parameters of a character.
type AnimationParams struct {
	Speed            float64
	Grounded         bool
	VerticalVelocity float64
	// Jump is set only on the step a jump fired.
	Jump bool
}

type nopPresentation struct{}

func (nopPresentation) Animate(AnimationParams) {}
func (nopPresentation) FlipHorizontal()         {}
