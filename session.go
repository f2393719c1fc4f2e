package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
)

// maxFixedSteps caps catch-up work after a long frame.
const maxFixedSteps = 5

// Options selects what a session loads.
type Options struct {
	Level  string
	Script string
	Debug  bool
}

// fixedClock turns frame time into a whole number of fixed steps.
type fixedClock struct {
	step float64
	acc  float64
}

// Advance adds dt and returns how many fixed steps are due.
func (c *fixedClock) Advance(dt float64) int {
	if c.step <= 0 {
		return 0
	}
	c.acc += dt
	n := int(math.Floor(c.acc/c.step + 1e-9))
	if n > maxFixedSteps {
		c.acc = 0
		return maxFixedSteps
	}
	c.acc -= float64(n) * c.step
	if c.acc < 0 {
		c.acc = 0
	}
	return n
}

// session is the simulation side of the game, without window or UI.
type session struct {
	world   *ecs.World
	physics *ecs.PhysicsWorld
	level   *levels.Level
	spec    *prefabs.WorldSpec
	player  ecs.Entity
	script  string

	frame    *ecs.Scheduler
	fixed    *ecs.Scheduler
	late     *ecs.Scheduler
	scripted *system.ScriptedInputSystem
	stepper  *system.PhysicsSystem
	clock    fixedClock
}

func newSession(opts Options, read system.DeviceReader) (*session, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	name := opts.Level
	if name == "" {
		name = spec.Level
	}
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}

	s := &session{
		world:    ecs.NewWorld(),
		physics:  ecs.NewPhysicsWorld(lvl, spec.Gravity),
		level:    lvl,
		spec:     spec,
		script:   opts.Script,
		scripted: system.NewScriptedInputSystem(),
		clock:    fixedClock{step: spec.FixedStep},
	}

	s.player, err = entity.NewPlayer(s.world, s.physics, lvl.Spawn())
	if err != nil {
		return nil, err
	}
	if _, err := entity.NewCamera(s.world); err != nil {
		return nil, err
	}
	if opts.Script != "" {
		src, err := script.Load(opts.Script)
		if err != nil {
			return nil, err
		}
		if err := entity.AttachScript(s.world, s.player, src); err != nil {
			return nil, err
		}
		log.Info("scripted input", "script", src.Name())
	}

	input := system.NewInputSystem()
	if read != nil {
		input = system.NewInputSystemWithReader(read)
	}
	s.stepper = system.NewPhysicsSystem(s.physics, spec.FixedStep)
	frameDt := 1.0 / common.TPS

	s.frame = ecs.NewScheduler(input, s.scripted, system.NewMotionSampleSystem())
	s.fixed = ecs.NewScheduler(system.NewMotionSystem(), s.stepper)
	s.late = ecs.NewScheduler(system.NewAnimationSystem(frameDt), system.NewCameraSystem(frameDt))

	log.Info("level loaded", "level", lvl.Name, "spawn", lvl.Spawn(), "gravity", spec.Gravity, "fixed_step", spec.FixedStep)
	return s, nil
}

// pauseRequested reports whether this frame's input asked for the pause menu.
func (s *session) pauseRequested() bool {
	in, ok := ecs.Get(s.world, s.player, component.InputComponent)
	return ok && in.Pause
}

// sample runs the input phase of a frame.
func (s *session) sample() {
	s.frame.Update(s.world)
}

// advance runs the fixed steps due for dt and then the late systems.
func (s *session) advance(dt float64) int {
	n := s.clock.Advance(dt)
	for i := 0; i < n; i++ {
		s.fixed.Update(s.world)
	}
	s.late.Update(s.world)
	s.drainEvents()
	return n
}

func (s *session) drainEvents() {
	for _, evt := range s.world.Events().Drain() {
		log.Debug("motion event", "type", evt.Type)
	}
}

// applyChange reloads the prefab or script behind a changed file. Invalid
// files leave the running tuning untouched.
func (s *session) applyChange(change prefabs.Change) error {
	switch change.Kind {
	case prefabs.ChangeScript:
		return s.reloadScript(change.Name)
	case prefabs.ChangeSpec:
	default:
		return nil
	}

	switch change.Name {
	case prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		return entity.ApplyPlayerSpec(s.world, spec)
	case prefabs.CameraFile:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		return entity.ApplyCameraSpec(s.world, spec)
	case prefabs.WorldFile:
		spec, err := prefabs.LoadWorldSpec()
		if err != nil {
			return err
		}
		s.physics.SetGravity(spec.Gravity)
		s.stepper.SetFixedStep(spec.FixedStep)
		s.clock.step = spec.FixedStep
		s.spec = spec
		return nil
	}
	return nil
}

func (s *session) reloadScript(name string) error {
	if s.script == "" || script.BaseName(s.script) != script.BaseName(name) {
		return nil
	}
	src, err := script.Load(s.script)
	if err != nil {
		return err
	}
	if !ecs.Has(s.world, s.player, component.ScriptedInputComponent) {
		return errors.New("player is not scripted")
	}
	if err := entity.AttachScript(s.world, s.player, src); err != nil {
		return err
	}
	s.scripted.Reset(s.player)
	return nil
}
