package motion

import (
	"fmt"
	"math"

	"github.com/milk9111/platformer/common"
)

// movingThreshold is the input magnitude above which a character counts as moving.
const movingThreshold = 0.1

// Input is one render step worth of sampled input.
type Input struct {
	Horizontal  float64
	JumpPressed bool
	JumpHeld    bool
}

// State is the coarse motion state of a character.
type State int

const (
	StateGrounded State = iota
	StateAirborneAscending
	StateAirborneDescending
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAirborneAscending:
		return "ascending"
	case StateAirborneDescending:
		return "descending"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MotionState is a snapshot of everything the controller knows about its character.
type MotionState struct {
	HorizontalInput float64
	JumpPressed     bool
	JumpHeld        bool
	IsGrounded      bool
	IsJumping       bool
	FacingRight     bool
	Velocity        common.Vec2
}

// Controller turns sampled input and ground contact into a target velocity
// for one character. It is not safe for concurrent use; the game loop is its
// only caller.
type Controller struct {
	cfg    Config
	body   RigidBody
	ground GroundSensor
	view   Presentation

	input Input
	// pressed latches a jump edge until a fixed step consumes it.
	pressed bool

	grounded    bool
	jumping     bool
	facingRight bool
}

type Option func(*Controller)

// WithPresentation attaches an observer for animation parameters and flips.
func WithPresentation(p Presentation) Option {
	return func(c *Controller) {
		if p != nil {
			c.view = p
		}
	}
}

// NewController validates cfg and wires the collaborators. The body and the
// ground sensor are required.
func NewController(cfg Config, body RigidBody, ground GroundSensor, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, ErrNilRigidBody
	}
	if ground == nil {
		return nil, ErrNilGroundSensor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:         cfg,
		body:        body,
		ground:      ground,
		view:        nopPresentation{},
		facingRight: cfg.FacingRight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the active tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the tuning in place. Facing and jump state are kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// Sample polls src once. Call it every render step before the fixed steps
// of that frame.
func (c *Controller) Sample(src InputSource) {
	if src == nil {
		return
	}
	c.SetInput(Input{
		Horizontal:  src.SampleHorizontal(),
		JumpPressed: src.SampleJumpPressed(),
		JumpHeld:    src.SampleJumpHeld(),
	})
}

// SetInput stores pre-sampled input. A jump edge stays latched until the
// next fixed step consumes it.
func (c *Controller) SetInput(in Input) {
	c.input = in
	if in.JumpPressed {
		c.pressed = true
	}
}

// FixedUpdate runs one fixed step using the latched input and a fresh
// ground query.
func (c *Controller) FixedUpdate() {
	anchor := c.body.Position().Add(c.cfg.GroundCheckOffset)
	contact := c.ground.QueryGroundContact(anchor, c.cfg.GroundCheckRadius, c.cfg.GroundLayerMask)

	in := c.input
	in.JumpPressed = c.pressed
	c.pressed = false

	c.Step(in, contact)
}

// Step applies one fixed step of the motion rules. Callers that sample
// ground contact themselves can drive the controller through Step directly.
func (c *Controller) Step(in Input, groundContact bool) {
	c.grounded = groundContact
	vel := c.body.Velocity()
	if c.grounded && vel.Y <= 0 {
		c.jumping = false
	}

	// horizontal input is trusted to be in [-1,1]
	vx := in.Horizontal * c.cfg.MoveSpeed
	if !c.grounded {
		vx *= c.cfg.AirControl
	}
	vel.X = vx

	if in.Horizontal > 0 && !c.facingRight {
		c.flip()
	} else if in.Horizontal < 0 && c.facingRight {
		c.flip()
	}

	jumped := false
	if in.JumpPressed && c.grounded {
		c.jumping = true
		vel.Y = c.cfg.JumpForce
		jumped = true
	}

	if c.jumping && !in.JumpHeld && vel.Y > 0 {
		vel.Y *= c.cfg.JumpCutMultiplier
	}

	c.body.SetVelocity(vel)

	c.view.Animate(AnimationParams{
		Speed:            math.Abs(in.Horizontal),
		Grounded:         c.grounded,
		VerticalVelocity: vel.Y,
		Jump:             jumped,
	})
}

func (c *Controller) flip() {
	c.facingRight = !c.facingRight
	c.view.FlipHorizontal()
}

func (c *Controller) IsGrounded() bool {
	return c.grounded
}

func (c *Controller) IsJumping() bool {
	return c.jumping
}

func (c *Controller) FacingRight() bool {
	return c.facingRight
}

// IsMoving reports whether the last sampled horizontal input is meaningfully non-zero.
func (c *Controller) IsMoving() bool {
	return math.Abs(c.input.Horizontal) > movingThreshold
}

// State derives the coarse motion state from the last step.
func (c *Controller) State() State {
	vy := c.body.Velocity().Y
	switch {
	case c.grounded && vy <= 0:
		return StateGrounded
	case vy > 0:
		return StateAirborneAscending
	default:
		return StateAirborneDescending
	}
}

func (c *Controller) Snapshot() MotionState {
	return MotionState{
		HorizontalInput: c.input.Horizontal,
		JumpPressed:     c.pressed,
		JumpHeld:        c.input.JumpHeld,
		IsGrounded:      c.grounded,
		IsJumping:       c.jumping,
		FacingRight:     c.facingRight,
		Velocity:        c.body.Velocity(),
	}
}
