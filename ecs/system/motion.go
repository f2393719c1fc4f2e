package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MotionSampleSystem feeds each frame's input to the character controllers.
// It runs once per rendered frame, before any fixed steps.
type MotionSampleSystem struct{}

func NewMotionSampleSystem() *MotionSampleSystem {
	return &MotionSampleSystem{}
}

func (s *MotionSampleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.MotionComponent.Kind(), component.InputComponent.Kind()) {
		m, _ := ecs.Get(w, e, component.MotionComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)
		if m.Controller == nil {
			continue
		}
		m.Controller.Sample(input)
	}
}

// MotionSystem runs one controller fixed step per call. It must run before
// the physics step of the same tick so velocity writes are integrated.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if m.Controller == nil {
			return
		}
		m.Controller.FixedUpdate()
	})
}
