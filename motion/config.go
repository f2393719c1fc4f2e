package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/platformer/common"
)

var (
	ErrNilRigidBody    = errors.New("motion: rigid body is nil")
	ErrNilGroundSensor = errors.New("motion: ground sensor is nil")
	ErrInvalidConfig   = errors.New("motion: invalid config")
)

// Config holds the tuning of a character. It is fixed for the lifetime of a
// controller unless replaced through SetConfig.
type Config struct {
	MoveSpeed  float64
	JumpForce  float64
	AirControl float64

	GroundCheckRadius float64
	GroundLayerMask   uint32
	// GroundCheckOffset is the feet anchor relative to the body position.
	GroundCheckOffset common.Vec2

	// JumpCutMultiplier scales upward velocity on every step the jump
	// button is released during a jump.
	JumpCutMultiplier float64

	FacingRight bool
}

// DefaultConfig returns the stock character tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:         8,
		JumpForce:         12,
		AirControl:        0.8,
		GroundCheckRadius: 0.3,
		GroundLayerMask:   1,
		GroundCheckOffset: common.Vec2{X: 0, Y: -0.5},
		JumpCutMultiplier: 0.5,
		FacingRight:       true,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case !finite(c.MoveSpeed) || c.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed %v", ErrInvalidConfig, c.MoveSpeed)
	case !finite(c.JumpForce) || c.JumpForce < 0:
		return fmt.Errorf("%w: jump force %v", ErrInvalidConfig, c.JumpForce)
	case !finite(c.AirControl) || c.AirControl <= 0 || c.AirControl > 1:
		return fmt.Errorf("%w: air control %v not in (0,1]", ErrInvalidConfig, c.AirControl)
	case !finite(c.GroundCheckRadius) || c.GroundCheckRadius <= 0:
		return fmt.Errorf("%w: ground check radius %v", ErrInvalidConfig, c.GroundCheckRadius)
	case c.GroundLayerMask == 0:
		return fmt.Errorf("%w: empty ground layer mask", ErrInvalidConfig)
	case !finite(c.JumpCutMultiplier) || c.JumpCutMultiplier < 0 || c.JumpCutMultiplier >= 1:
		return fmt.Errorf("%w: jump cut multiplier %v not in [0,1)", ErrInvalidConfig, c.JumpCutMultiplier)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
