package main

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func TestFixedClockAdvance(t *testing.T) {
	cases := []struct {
		name   string
		step   float64
		frames []float64
		want   []int
	}{
		{"sub_step_frames_accumulate", 0.02, []float64{0.01, 0.01, 0.01}, []int{0, 1, 0}},
		{"several_steps_in_one_frame", 0.02, []float64{0.065}, []int{3}},
		{"long_frame_is_capped", 0.02, []float64{1.0, 0.01}, []int{maxFixedSteps, 0}},
		{"zero_step_never_runs", 0, []float64{1}, []int{0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := fixedClock{step: c.step}
			for i, dt := range c.frames {
				if got := clock.Advance(dt); got != c.want[i] {
					t.Fatalf("frame %d: got %d steps want %d", i, got, c.want[i])
				}
			}
		})
	}
}

func TestFixedClockSixtyFramesIsOneSecond(t *testing.T) {
	clock := fixedClock{step: 0.02}
	total := 0
	for i := 0; i < 60; i++ {
		total += clock.Advance(1.0 / 60)
	}
	if total != 50 {
		t.Fatalf("got %d fixed steps in one second, want 50", total)
	}
}

func newTestSession(t *testing.T, opts Options, in *component.Input) *session {
	t.Helper()
	s, err := newSession(opts, func() component.Input { return *in })
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	return s
}

func TestSessionPlayerSettles(t *testing.T) {
	var in component.Input
	s := newTestSession(t, Options{Level: "flat"}, &in)

	steps := 0
	for i := 0; i < 120; i++ {
		s.sample()
		steps += s.advance(1.0 / 60)
	}
	if steps != 100 {
		t.Fatalf("fixed steps=%d want 100", steps)
	}
	m, _ := ecs.Get(s.world, s.player, component.MotionComponent)
	if !m.Controller.IsGrounded() {
		t.Fatalf("player should be grounded after two seconds")
	}
	if s.world.Events().Len() != 0 {
		t.Fatalf("events should be drained each frame")
	}
}

func TestSessionPauseRequest(t *testing.T) {
	var in component.Input
	s := newTestSession(t, Options{Level: "flat"}, &in)

	s.sample()
	if s.pauseRequested() {
		t.Fatalf("no pause without input")
	}
	in.Pause = true
	s.sample()
	if !s.pauseRequested() {
		t.Fatalf("pause input not seen")
	}
}

func TestSessionScriptedPlayerMoves(t *testing.T) {
	var in component.Input
	s := newTestSession(t, Options{Level: "flat", Script: "demo"}, &in)
	start, _ := ecs.Get(s.world, s.player, component.TransformComponent)

	for i := 0; i < 90; i++ {
		s.sample()
		s.advance(1.0 / 60)
	}
	now, _ := ecs.Get(s.world, s.player, component.TransformComponent)
	if now.X <= start.X+1 {
		t.Fatalf("demo script should run right: start %v now %v", start.X, now.X)
	}
}

func TestSessionApplyChange(t *testing.T) {
	var in component.Input
	s := newTestSession(t, Options{Level: "flat", Script: "idle"}, &in)

	cases := []struct {
		name   string
		change prefabs.Change
	}{
		{"player", prefabs.Change{Name: prefabs.PlayerFile, Kind: prefabs.ChangeSpec}},
		{"camera", prefabs.Change{Name: prefabs.CameraFile, Kind: prefabs.ChangeSpec}},
		{"world", prefabs.Change{Name: prefabs.WorldFile, Kind: prefabs.ChangeSpec}},
		{"unrelated_yaml", prefabs.Change{Name: "other.yaml", Kind: prefabs.ChangeSpec}},
		{"attached_script", prefabs.Change{Name: "idle.tengo", Kind: prefabs.ChangeScript}},
		{"other_script", prefabs.Change{Name: "hop.tengo", Kind: prefabs.ChangeScript}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := s.applyChange(c.change); err != nil {
				t.Fatalf("applyChange: %v", err)
			}
		})
	}

	si, ok := ecs.Get(s.world, s.player, component.ScriptedInputComponent)
	if !ok || si.Source == nil || si.Source.Tick() != 0 {
		t.Fatalf("script reload should attach a fresh source")
	}
}

func TestNewSessionUnknownLevel(t *testing.T) {
	var in component.Input
	if _, err := newSession(Options{Level: "missing"}, func() component.Input { return in }); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
