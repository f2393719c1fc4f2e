package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation clip names picked from the controller's parameters.
const (
	AnimIdle = "idle"
	AnimRun  = "run"
	AnimJump = "jump"
	AnimFall = "fall"
)

const runSpeedThreshold = 0.1

// Presenter is the motion.Presentation of one entity. It stores the
// controller's animation parameters on the entity's Animation component,
// mirrors facing onto Transform.ScaleX and queues motion events.
type Presenter struct {
	world  *ecs.World
	entity ecs.Entity

	squashScale    float32
	squashDuration float32

	wasGrounded bool
	started     bool
}

func NewPresenter(w *ecs.World, e ecs.Entity, squashScale, squashDuration float64) *Presenter {
	return &Presenter{
		world:          w,
		entity:         e,
		squashScale:    float32(squashScale),
		squashDuration: float32(squashDuration),
	}
}

func (p *Presenter) Animate(params motion.AnimationParams) {
	anim, ok := ecs.Get(p.world, p.entity, component.AnimationComponent)
	if !ok {
		return
	}

	anim.Params = params
	if next := clipFor(params); next != anim.Current {
		anim.Current = next
		anim.FrameTimer = 0
	}

	if params.Jump {
		p.push(ecs.MotionEventJumped)
	}
	if p.started && !p.wasGrounded && params.Grounded {
		p.push(ecs.MotionEventLanded)
		if p.squashDuration > 0 {
			anim.Squash = gween.New(p.squashScale, 1, p.squashDuration, ease.OutQuad)
		}
	}
	p.wasGrounded = params.Grounded
	p.started = true

	_ = ecs.Add(p.world, p.entity, component.AnimationComponent, anim)
}

func (p *Presenter) FlipHorizontal() {
	t, ok := ecs.Get(p.world, p.entity, component.TransformComponent)
	if !ok {
		return
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	t.ScaleX = -t.ScaleX
	_ = ecs.Add(p.world, p.entity, component.TransformComponent, t)
	p.push(ecs.MotionEventFlipped)
}

func (p *Presenter) push(kind ecs.MotionEventKind) {
	p.world.Events().Push(ecs.Event{
		Type: string(kind),
		Data: ecs.MotionEvent{Entity: p.entity, Kind: kind},
	})
}

func clipFor(params motion.AnimationParams) string {
	switch {
	case !params.Grounded && params.VerticalVelocity > 0:
		return AnimJump
	case !params.Grounded:
		return AnimFall
	case math.Abs(params.Speed) > runSpeedThreshold:
		return AnimRun
	default:
		return AnimIdle
	}
}

// AnimationSystem advances clip timers and landing squash tweens once per
// frame, writing the squash into Transform.ScaleY.
type AnimationSystem struct {
	dt float32
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: float32(dt)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		anim.FrameTimer++
		if anim.Squash == nil {
			return
		}
		scale, done := anim.Squash.Update(a.dt)
		if done {
			anim.Squash = nil
			scale = 1
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.ScaleY = float64(scale)
			_ = ecs.Add(w, e, component.TransformComponent, t)
		}
	})
}
