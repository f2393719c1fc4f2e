package kinematic

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/solarlune/resolv"
)

// Body is a gravity-affected box moved by sweeping against solids. It
// satisfies the controller's rigid body contract.
type Body struct {
	world *World
	obj   *resolv.Object
	vel   common.Vec2

	// OnGround is set when the last step ended resting on a solid.
	OnGround bool
}

func (b *Body) Position() common.Vec2 {
	return b.world.toWorld(b.obj.X+b.obj.W/2, b.obj.Y+b.obj.H/2)
}

func (b *Body) Velocity() common.Vec2 { return b.vel }

func (b *Body) SetVelocity(v common.Vec2) { b.vel = v }

func (b *Body) Object() *resolv.Object { return b.obj }

func (b *Body) step(dt float64) {
	b.vel.Y += b.world.gravity * dt

	dx := b.vel.X * dt * b.world.scale
	if moved, hit := b.sweep(dx, 0); hit {
		dx = moved
		b.vel.X = 0
	}
	b.obj.X += dx

	// space is y-down
	dy := -b.vel.Y * dt * b.world.scale
	b.OnGround = false
	if moved, hit := b.sweep(0, dy); hit {
		dy = moved
		if b.vel.Y < 0 {
			b.OnGround = true
		}
		b.vel.Y = 0
	}
	b.obj.Y += dy
	b.obj.Update()
}

// sweep clips a single-axis move against the nearest solid in its path.
func (b *Body) sweep(dx, dy float64) (float64, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	// resolv maps bounds to cells one pixel short, so look one pixel further
	check := b.obj.Check(padded(dx), padded(dy), tagSolid, tagPlatform)
	if check == nil {
		return 0, false
	}

	move := dx + dy
	hit := false
	for _, o := range check.ObjectsByTags(tagSolid, tagPlatform) {
		if !b.overlaps(o, dx, dy) {
			continue
		}
		contact := check.ContactWithObject(o)
		c := contact.X()
		if dy != 0 {
			c = contact.Y()
		}
		// already inside this solid; leave it to the other axis
		if c*move < 0 {
			continue
		}
		if math.Abs(c) < math.Abs(move) || !hit {
			move = c
		}
		hit = true
	}
	return move, hit
}

func (b *Body) overlaps(o *resolv.Object, dx, dy float64) bool {
	x, y := b.obj.X+dx, b.obj.Y+dy
	return x+b.obj.W-o.X > touchEpsilon && o.X+o.W-x > touchEpsilon &&
		y+b.obj.H-o.Y > touchEpsilon && o.Y+o.H-y > touchEpsilon
}

func padded(v float64) float64 {
	switch {
	case v > 0:
		return v + 1
	case v < 0:
		return v - 1
	}
	return 0
}
