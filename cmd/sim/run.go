package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/kinematic"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
	"github.com/spf13/cobra"
)

var (
	flagLevel     string
	flagScript    string
	flagSteps     int
	flagFixedStep float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted simulation",
	Long: `Build a kinematic world from a level, spawn the player at the level
spawn point and feed its controller one script tick per fixed step.
State transitions are logged; --verbose logs every step.`,
	RunE: runSim,
}

func init() {
	runCmd.Flags().StringVar(&flagLevel, "level", "", "Level name (default: world.yaml level)")
	runCmd.Flags().StringVar(&flagScript, "script", "demo", "Input script name")
	runCmd.Flags().IntVar(&flagSteps, "steps", 600, "Number of fixed steps")
	runCmd.Flags().Float64Var(&flagFixedStep, "fixed-step", 0, "Fixed step in seconds (default: world.yaml)")
}

type simConfig struct {
	Level     string
	Script    string
	Steps     int
	FixedStep float64
}

type simResult struct {
	Steps       int
	Position    common.Vec2
	Final       motion.MotionState
	State       motion.State
	Transitions int
	Jumps       int
	Flips       int
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	res, err := simulate(simConfig{
		Level:     flagLevel,
		Script:    flagScript,
		Steps:     flagSteps,
		FixedStep: flagFixedStep,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("done",
		"steps", res.Steps,
		"x", fmt.Sprintf("%.3f", res.Position.X),
		"y", fmt.Sprintf("%.3f", res.Position.Y),
		"state", res.State,
		"transitions", res.Transitions,
		"jumps", res.Jumps,
		"flips", res.Flips,
	)
	return nil
}

// simPresenter counts presentation callbacks instead of drawing.
type simPresenter struct {
	logger *log.Logger
	step   *int
	jumps  int
	flips  int
}

func (p *simPresenter) Animate(params motion.AnimationParams) {
	if params.Jump {
		p.jumps++
		p.logger.Debug("jump", "step", *p.step, "vy", params.VerticalVelocity)
	}
}

func (p *simPresenter) FlipHorizontal() {
	p.flips++
	p.logger.Debug("flip", "step", *p.step)
}

func simulate(cfg simConfig, logger *log.Logger) (simResult, error) {
	if cfg.Steps < 0 {
		return simResult{}, fmt.Errorf("steps must not be negative, got %d", cfg.Steps)
	}
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return simResult{}, err
	}
	if cfg.Level == "" {
		cfg.Level = world.Level
	}
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = world.FixedStep
	}

	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return simResult{}, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return simResult{}, err
	}
	motionCfg, err := playerSpec.MotionConfig()
	if err != nil {
		return simResult{}, err
	}
	src, err := script.Load(cfg.Script)
	if err != nil {
		return simResult{}, err
	}

	kw := kinematic.NewWorld(lvl, world.Gravity)
	body := kw.AddBody(lvl.Spawn(), playerSpec.Collider.Width, playerSpec.Collider.Height)

	step := 0
	view := &simPresenter{logger: logger, step: &step}
	ctrl, err := motion.NewController(motionCfg, body, kw, motion.WithPresentation(view))
	if err != nil {
		return simResult{}, fmt.Errorf("controller: %w", err)
	}

	logger.Info("start", "level", lvl.Name, "script", src.Name(), "steps", cfg.Steps, "dt", cfg.FixedStep)

	res := simResult{}
	state := ctrl.State()
	for step = 0; step < cfg.Steps; step++ {
		if err := src.Advance(); err != nil {
			return res, err
		}
		ctrl.Sample(src)
		ctrl.FixedUpdate()
		kw.Step(cfg.FixedStep)

		pos := body.Position()
		if next := ctrl.State(); next != state {
			res.Transitions++
			logger.Info("state", "step", step, "from", state, "to", next, "x", fmt.Sprintf("%.2f", pos.X), "y", fmt.Sprintf("%.2f", pos.Y))
			state = next
		}
		logger.Debug("step", "n", step, "pos", pos, "vel", body.Velocity(), "grounded", ctrl.IsGrounded())
	}

	res.Steps = cfg.Steps
	res.Position = body.Position()
	res.Final = ctrl.Snapshot()
	res.State = state
	res.Jumps = view.jumps
	res.Flips = view.flips
	return res, nil
}
