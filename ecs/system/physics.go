package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PhysicsSystem steps the Chipmunk space by a fixed dt and copies body
// positions back onto transforms.
type PhysicsSystem struct {
	world *ecs.PhysicsWorld
	dt    float64
}

func NewPhysicsSystem(world *ecs.PhysicsWorld, dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = common.DefaultFixedStep
	}
	return &PhysicsSystem{world: world, dt: dt}
}

func (ps *PhysicsSystem) World() *ecs.PhysicsWorld {
	return ps.world
}

func (ps *PhysicsSystem) SetFixedStep(dt float64) {
	if dt > 0 {
		ps.dt = dt
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || ps.world == nil {
		return
	}
	ps.world.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if body.Body == nil {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		pos := body.Body.Position()
		t.X, t.Y = pos.X, pos.Y
		_ = ecs.Add(w, e, component.TransformComponent, t)
	}
}

// Remove detaches an entity's body from the space and destroys the entity.
func (ps *PhysicsSystem) Remove(w *ecs.World, e ecs.Entity) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && ps.world != nil {
		ps.world.RemoveBody(body)
	}
	w.DestroyEntity(e)
}
