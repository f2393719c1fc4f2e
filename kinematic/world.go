// Package kinematic is a lightweight stand-in for the rigid-body world. It
// moves axis-aligned boxes through a resolv space built from a level, so a
// character controller can run headless without Chipmunk.
package kinematic

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/solarlune/resolv"
)

const (
	tagSolid    = "solid"
	tagPlatform = "platform"
	tagBody     = "body"
	tagProbe    = "probe"

	// DefaultScale is how many space pixels make one world unit.
	DefaultScale = 32.0

	// overlap below this, in pixels, counts as touching
	touchEpsilon = 1e-6
)

// World is a resolv space over one level. The space is y-down in pixels with
// a one-tile margin for the boundary walls; the API is y-up world units.
type World struct {
	space   *resolv.Space
	probe   *resolv.Object
	scale   float64
	margin  float64
	height  float64
	gravity float64
	bodies  []*Body
}

// NewWorld builds the space from the level's merged solids plus walls
// around its bounds.
func NewWorld(level *levels.Level, gravity float64) *World {
	scale := DefaultScale
	lo, hi := level.Bounds()
	tile := level.TileSize * scale
	cell := int(math.Max(1, math.Round(tile)))

	w := &World{
		scale:   scale,
		margin:  tile,
		height:  hi.Y,
		gravity: gravity,
	}
	spaceW := int(math.Ceil((hi.X-lo.X)*scale + 2*tile))
	spaceH := int(math.Ceil((hi.Y-lo.Y)*scale + 2*tile))
	w.space = resolv.NewSpace(spaceW, spaceH, cell, cell)

	for _, s := range level.Solids() {
		tag := tagSolid
		if s.Platform {
			tag = tagPlatform
		}
		w.addStatic(s.Min, s.Max, tag)
	}

	m := level.TileSize
	w.addStatic(common.Vec2{X: lo.X - m, Y: lo.Y - m}, common.Vec2{X: hi.X + m, Y: lo.Y}, tagSolid)
	w.addStatic(common.Vec2{X: lo.X - m, Y: hi.Y}, common.Vec2{X: hi.X + m, Y: hi.Y + m}, tagSolid)
	w.addStatic(common.Vec2{X: lo.X - m, Y: lo.Y}, common.Vec2{X: lo.X, Y: hi.Y}, tagSolid)
	w.addStatic(common.Vec2{X: hi.X, Y: lo.Y}, common.Vec2{X: hi.X + m, Y: hi.Y}, tagSolid)

	w.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	w.space.Add(w.probe)
	return w
}

func (w *World) Space() *resolv.Space { return w.space }

func (w *World) SetGravity(g float64) { w.gravity = g }

// AddBody places a box of the given size centered on pos.
func (w *World) AddBody(pos common.Vec2, width, height float64) *Body {
	pw, ph := width*w.scale, height*w.scale
	x, y := w.toSpace(pos)
	obj := resolv.NewObject(x-pw/2, y-ph/2, pw, ph, tagBody)
	obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
	w.space.Add(obj)

	b := &Body{world: w, obj: obj}
	w.bodies = append(w.bodies, b)
	return b
}

// Step integrates gravity and moves every body, X first then Y.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.step(dt)
	}
}

// QueryGroundContact reports whether a solid on layerMask intersects the
// circle at anchor.
func (w *World) QueryGroundContact(anchor common.Vec2, radius float64, layerMask uint32) bool {
	tags := maskTags(layerMask)
	if len(tags) == 0 || radius <= 0 {
		return false
	}

	cx, cy := w.toSpace(anchor)
	r := radius * w.scale
	w.probe.X, w.probe.Y = cx-r, cy-r
	// one extra pixel so the probe's cells cover its far edge
	w.probe.W, w.probe.H = 2*r+1, 2*r+1
	w.probe.Update()

	check := w.probe.Check(0, 0, tags...)
	if check == nil {
		return false
	}
	for _, o := range check.ObjectsByTags(tags...) {
		nx := common.Clamp(cx, o.X, o.X+o.W)
		ny := common.Clamp(cy, o.Y, o.Y+o.H)
		if math.Hypot(cx-nx, cy-ny) <= r {
			return true
		}
	}
	return false
}

func (w *World) addStatic(lo, hi common.Vec2, tag string) {
	x, y := w.toSpace(common.Vec2{X: lo.X, Y: hi.Y})
	width := (hi.X - lo.X) * w.scale
	height := (hi.Y - lo.Y) * w.scale
	obj := resolv.NewObject(x, y, width, height, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	w.space.Add(obj)
}

// toSpace maps a y-up world point into the y-down space with its margin.
func (w *World) toSpace(p common.Vec2) (float64, float64) {
	return p.X*w.scale + w.margin, (w.height-p.Y)*w.scale + w.margin
}

func (w *World) toWorld(x, y float64) common.Vec2 {
	return common.Vec2{X: (x - w.margin) / w.scale, Y: w.height - (y-w.margin)/w.scale}
}

func maskTags(mask uint32) []string {
	var tags []string
	if mask&levels.LayerGround != 0 {
		tags = append(tags, tagSolid)
	}
	if mask&levels.LayerPlatform != 0 {
		tags = append(tags, tagPlatform)
	}
	return tags
}
