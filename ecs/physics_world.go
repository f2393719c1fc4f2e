package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
)

const boundsThickness = 0.05

// PhysicsWorld owns the Chipmunk space and the static level shapes. Its
// bodies are y-up, in world units.
type PhysicsWorld struct {
	level *levels.Level
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	staticShapes  int
}

// NewPhysicsWorld creates a physics world for a level.
func NewPhysicsWorld(level *levels.Level, gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	pw := &PhysicsWorld{
		level:         level,
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
	pw.buildStaticShapes()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// StaticShapeCount reports how many level shapes were built.
func (pw *PhysicsWorld) StaticShapeCount() int {
	if pw == nil {
		return 0
	}
	return pw.staticShapes
}

// SetGravity changes gravity for subsequent steps.
func (pw *PhysicsWorld) SetGravity(g float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// AddBox creates a dynamic, rotation-locked box body centered on pos.
func (pw *PhysicsWorld) AddBox(e Entity, pos common.Vec2, body component.PhysicsBody, layer component.CollisionLayer) component.PhysicsBody {
	if pw == nil || pw.space == nil {
		return body
	}
	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	shape.SetFriction(body.Friction)
	shape.SetElasticity(body.Elasticity)
	shape.SetCollisionType(collisionTypeDynamic)
	shape.SetFilter(shapeFilter(layer))

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	body.Body = cpBody
	body.Shape = shape
	return body
}

// RemoveBody detaches a body and its shape from the space.
func (pw *PhysicsWorld) RemoveBody(body component.PhysicsBody) {
	if pw == nil || pw.space == nil {
		return
	}
	if body.Shape != nil {
		delete(pw.shapeToEntity, body.Shape)
		pw.space.RemoveShape(body.Shape)
	}
	if body.Body != nil {
		pw.space.RemoveBody(body.Body)
	}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// QueryGroundContact reports whether any non-sensor shape on layerMask lies
// within radius of anchor.
func (pw *PhysicsWorld) QueryGroundContact(anchor common.Vec2, radius float64, layerMask uint32) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(layerMask)}
	info := pw.space.PointQueryNearest(cp.Vector{X: anchor.X, Y: anchor.Y}, radius, filter)
	return info != nil && info.Shape != nil
}

// EntityForShape maps a dynamic shape back to its entity.
func (pw *PhysicsWorld) EntityForShape(s *cp.Shape) (Entity, bool) {
	if pw == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[s]
	return e, ok
}

func (pw *PhysicsWorld) buildStaticShapes() {
	if pw == nil || pw.space == nil || pw.level == nil {
		return
	}

	for _, s := range pw.level.Solids() {
		bb := cp.BB{L: s.Min.X, B: s.Min.Y, R: s.Max.X, T: s.Max.Y}
		shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
		pw.addStatic(shape, s.Layer())
	}

	lo, hi := pw.level.Bounds()
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: lo.X, Y: lo.Y}, b: cp.Vector{X: hi.X, Y: lo.Y}},
		{a: cp.Vector{X: lo.X, Y: hi.Y}, b: cp.Vector{X: hi.X, Y: hi.Y}},
		{a: cp.Vector{X: lo.X, Y: lo.Y}, b: cp.Vector{X: lo.X, Y: hi.Y}},
		{a: cp.Vector{X: hi.X, Y: lo.Y}, b: cp.Vector{X: hi.X, Y: hi.Y}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, boundsThickness)
		pw.addStatic(shape, component.LayerGround)
	}
}

func (pw *PhysicsWorld) addStatic(shape *cp.Shape, category uint32) {
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(category), Mask: cp.ALL_CATEGORIES})
	pw.space.AddShape(shape)
	pw.staticShapes++
}

func shapeFilter(layer component.CollisionLayer) cp.ShapeFilter {
	category := uint(layer.Category)
	if category == 0 {
		category = uint(component.LayerPlayer)
	}
	mask := uint(layer.Mask)
	if layer.Mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: category, Mask: mask}
}

// Body adapts a Chipmunk body to the motion and camera collaborator contracts.
type Body struct {
	body *cp.Body
}

func NewBody(b *cp.Body) *Body {
	if b == nil {
		return nil
	}
	return &Body{body: b}
}

func (b *Body) Position() common.Vec2 {
	p := b.body.Position()
	return common.Vec2{X: p.X, Y: p.Y}
}

func (b *Body) Velocity() common.Vec2 {
	v := b.body.Velocity()
	return common.Vec2{X: v.X, Y: v.Y}
}

func (b *Body) SetVelocity(v common.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}
