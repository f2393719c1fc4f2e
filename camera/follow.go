// Package camera moves a 2D camera after a target.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/platformer/common"
)

var (
	ErrNilTarget     = errors.New("camera: target is nil")
	ErrInvalidBounds = errors.New("camera: invalid bounds")
)

// Target is anything with a world position.
type Target interface {
	Position() common.Vec2
}

// Bounds is an axis-aligned rectangle the camera center is clamped to.
type Bounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

func (b Bounds) validate() error {
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return fmt.Errorf("%w: %+v", ErrInvalidBounds, b)
	}
	return nil
}

// Config is the follow tuning.
type Config struct {
	// SmoothTime is roughly how long the camera takes to catch up, in seconds.
	SmoothTime float64
	Offset     common.Vec2
	UseBounds  bool
	Bounds     Bounds
}

func DefaultConfig() Config {
	return Config{
		SmoothTime: 0.125,
		Bounds:     Bounds{MinX: 0.2, MaxX: 0.5, MinY: -7.99, MaxY: -3},
	}
}

// Follow is a smooth-damped camera following one target.
type Follow struct {
	cfg      Config
	target   Target
	pos      common.Vec2
	velocity common.Vec2
}

// NewFollow creates a follower positioned on its target's desired point.
func NewFollow(cfg Config, target Target) (*Follow, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if cfg.SmoothTime < 0 {
		return nil, fmt.Errorf("camera: negative smooth time %v", cfg.SmoothTime)
	}
	if err := cfg.Bounds.validate(); err != nil {
		return nil, err
	}
	f := &Follow{cfg: cfg, target: target}
	f.pos = f.desired()
	return f, nil
}

func (f *Follow) Position() common.Vec2 {
	return f.pos
}

// Velocity is the internal smoothing velocity carried between updates.
func (f *Follow) Velocity() common.Vec2 {
	return f.velocity
}

func (f *Follow) Config() Config {
	return f.cfg
}

// SetConfig replaces the tuning. Position and smoothing velocity are kept.
func (f *Follow) SetConfig(cfg Config) error {
	if cfg.SmoothTime < 0 {
		return fmt.Errorf("camera: negative smooth time %v", cfg.SmoothTime)
	}
	if err := cfg.Bounds.validate(); err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

// SetBounds sets the clamp rectangle and turns clamping on.
func (f *Follow) SetBounds(minX, maxX, minY, maxY float64) error {
	b := Bounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	if err := b.validate(); err != nil {
		return err
	}
	f.cfg.Bounds = b
	f.cfg.UseBounds = true
	return nil
}

func (f *Follow) ClearBounds() {
	f.cfg.UseBounds = false
}

func (f *Follow) BoundsEnabled() bool {
	return f.cfg.UseBounds
}

// Snap jumps straight to the desired position and drops any smoothing velocity.
func (f *Follow) Snap() {
	f.pos = f.desired()
	f.velocity = common.Vec2{}
}

// Update moves the camera one late tick toward its target.
func (f *Follow) Update(dt float64) common.Vec2 {
	d := f.desired()
	f.pos.X = common.SmoothDamp(f.pos.X, d.X, &f.velocity.X, f.cfg.SmoothTime, math.Inf(1), dt)
	f.pos.Y = common.SmoothDamp(f.pos.Y, d.Y, &f.velocity.Y, f.cfg.SmoothTime, math.Inf(1), dt)
	return f.pos
}

func (f *Follow) desired() common.Vec2 {
	d := f.target.Position().Add(f.cfg.Offset)
	if f.cfg.UseBounds {
		d.X = common.Clamp(d.X, f.cfg.Bounds.MinX, f.cfg.Bounds.MaxX)
		d.Y = common.Clamp(d.Y, f.cfg.Bounds.MinY, f.cfg.Bounds.MaxY)
	}
	return d
}
