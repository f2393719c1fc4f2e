package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
)

var (
	defaultPlayerColor  = color.RGBA{R: 0x4f, G: 0xa3, B: 0xe0, A: 0xff}
	defaultPlayerAccent = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
)

// NewPlayer loads player.yaml and builds the player at spawn.
func NewPlayer(w *ecs.World, pw *ecs.PhysicsWorld, spawn common.Vec2) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, pw, spec, spawn)
}

// NewPlayerFromSpec builds a controllable character: a rotation-locked body
// in the physics world, a motion controller driving it and the components
// the systems read.
func NewPlayerFromSpec(w *ecs.World, pw *ecs.PhysicsWorld, spec *prefabs.PlayerSpec, spawn common.Vec2) (ecs.Entity, error) {
	if spec == nil {
		return 0, errors.New("player: nil spec")
	}
	cfg, err := spec.MotionConfig()
	if err != nil {
		return 0, err
	}

	player := w.CreateEntity()
	fail := func(err error) (ecs.Entity, error) {
		if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent); ok {
			pw.RemoveBody(body)
		}
		w.DestroyEntity(player)
		return 0, err
	}

	scaleX := 1.0
	if !cfg.FacingRight {
		scaleX = -1
	}
	if err := ecs.Add(w, player, component.TransformComponent, component.Transform{
		X: spawn.X, Y: spawn.Y, ScaleX: scaleX, ScaleY: 1,
	}); err != nil {
		return fail(fmt.Errorf("player: add transform: %w", err))
	}

	layer := component.CollisionLayer{Category: component.LayerPlayer}
	body := pw.AddBox(player, spawn, component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Collider.Mass,
		Friction: spec.Collider.Friction,
	}, layer)
	if body.Body == nil {
		return fail(errors.New("player: physics world has no space"))
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent, body); err != nil {
		return fail(fmt.Errorf("player: add physics body: %w", err))
	}
	if err := ecs.Add(w, player, component.CollisionLayerComponent, layer); err != nil {
		return fail(fmt.Errorf("player: add collision layer: %w", err))
	}

	if err := ecs.Add(w, player, component.AnimationComponent, component.Animation{Current: system.AnimIdle}); err != nil {
		return fail(fmt.Errorf("player: add animation: %w", err))
	}
	presenter := system.NewPresenter(w, player, spec.Animation.SquashScale, spec.Animation.SquashDuration)

	ctrl, err := motion.NewController(cfg, ecs.NewBody(body.Body), pw, motion.WithPresentation(presenter))
	if err != nil {
		return fail(fmt.Errorf("player: controller: %w", err))
	}

	steps := []struct {
		name string
		add  func() error
	}{
		{"motion", func() error {
			return ecs.Add(w, player, component.MotionComponent, component.Motion{Controller: ctrl})
		}},
		{"input", func() error { return ecs.Add(w, player, component.InputComponent, component.Input{}) }},
		{"player tag", func() error { return ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}) }},
		{"sprite", func() error {
			return ecs.Add(w, player, component.SpriteComponent, component.Sprite{
				Width:  spec.Sprite.Width,
				Height: spec.Sprite.Height,
				Color:  spec.Sprite.Color.RGBA8(defaultPlayerColor),
				Accent: spec.Sprite.Accent.RGBA8(defaultPlayerAccent),
			})
		}},
	}
	for _, s := range steps {
		if err := s.add(); err != nil {
			return fail(fmt.Errorf("player: add %s: %w", s.name, err))
		}
	}

	return player, nil
}

// AttachScript drives the entity from an input script instead of devices.
func AttachScript(w *ecs.World, e ecs.Entity, src *script.InputSource) error {
	if src == nil {
		return errors.New("attach script: nil source")
	}
	if err := ecs.Add(w, e, component.ScriptedInputComponent, component.ScriptedInput{Source: src}); err != nil {
		return fmt.Errorf("attach script: %w", err)
	}
	return nil
}

// ApplyPlayerSpec retunes every live controller. An invalid spec leaves the
// previous tuning in place.
func ApplyPlayerSpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	cfg, err := spec.MotionConfig()
	if err != nil {
		return err
	}
	var errs []error
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if m.Controller == nil {
			return
		}
		if err := m.Controller.SetConfig(cfg); err != nil {
			errs = append(errs, fmt.Errorf("entity %v: %w", e, err))
		}
	})
	return errors.Join(errs...)
}
