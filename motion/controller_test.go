package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/platformer/common"
)

type fakeBody struct {
	pos common.Vec2
	vel common.Vec2
}

func (b *fakeBody) Position() common.Vec2     { return b.pos }
func (b *fakeBody) Velocity() common.Vec2     { return b.vel }
func (b *fakeBody) SetVelocity(v common.Vec2) { b.vel = v }

type groundQuery struct {
	anchor common.Vec2
	radius float64
	mask   uint32
}

type fakeGround struct {
	contact bool
	queries []groundQuery
}

func (g *fakeGround) QueryGroundContact(anchor common.Vec2, radius float64, mask uint32) bool {
	g.queries = append(g.queries, groundQuery{anchor: anchor, radius: radius, mask: mask})
	return g.contact
}

type fakeView struct {
	params []AnimationParams
	flips  int
}

func (v *fakeView) Animate(p AnimationParams) { v.params = append(v.params, p) }
func (v *fakeView) FlipHorizontal()           { v.flips++ }

type fakeInput struct {
	h       float64
	pressed bool
	held    bool
}

func (i fakeInput) SampleHorizontal() float64 { return i.h }
func (i fakeInput) SampleJumpPressed() bool   { return i.pressed }
func (i fakeInput) SampleJumpHeld() bool      { return i.held }

func newTestController(t *testing.T, cfg Config) (*Controller, *fakeBody, *fakeGround, *fakeView) {
	t.Helper()
	body := &fakeBody{}
	ground := &fakeGround{}
	view := &fakeView{}
	c, err := NewController(cfg, body, ground, WithPresentation(view))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, body, ground, view
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewControllerRejectsMissingCollaborators(t *testing.T) {
	cases := []struct {
		name   string
		body   RigidBody
		ground GroundSensor
		want   error
	}{
		{"no_body", nil, &fakeGround{}, ErrNilRigidBody},
		{"no_ground", &fakeBody{}, nil, ErrNilGroundSensor},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, err := NewController(DefaultConfig(), c.body, c.ground)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if ctrl != nil {
				t.Fatalf("expected nil controller on error")
			}
		})
	}
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"air_control_zero", func(c *Config) { c.AirControl = 0 }},
		{"air_control_above_one", func(c *Config) { c.AirControl = 1.5 }},
		{"negative_speed", func(c *Config) { c.MoveSpeed = -1 }},
		{"nan_jump", func(c *Config) { c.JumpForce = math.NaN() }},
		{"zero_radius", func(c *Config) { c.GroundCheckRadius = 0 }},
		{"empty_mask", func(c *Config) { c.GroundLayerMask = 0 }},
		{"cut_of_one", func(c *Config) { c.JumpCutMultiplier = 1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			_, err := NewController(cfg, &fakeBody{}, &fakeGround{})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestHorizontalVelocity(t *testing.T) {
	cfg := DefaultConfig()
	for _, grounded := range []bool{true, false} {
		for h := -1.0; h <= 1.0; h += 0.25 {
			c, body, _, _ := newTestController(t, cfg)
			body.vel = common.Vec2{X: 99, Y: -2}
			c.Step(Input{Horizontal: h}, grounded)

			want := h * cfg.MoveSpeed
			if !grounded {
				want *= cfg.AirControl
			}
			if !approx(body.vel.X, want) {
				t.Fatalf("grounded=%v h=%v: vx=%v want %v", grounded, h, body.vel.X, want)
			}
			if body.vel.Y != -2 {
				t.Fatalf("grounded=%v h=%v: vy changed to %v", grounded, h, body.vel.Y)
			}
		}
	}
}

func TestScenarios(t *testing.T) {
	t.Run("grounded_full_speed", func(t *testing.T) {
		c, body, _, _ := newTestController(t, DefaultConfig())
		c.Step(Input{Horizontal: 1}, true)
		if !approx(body.vel.X, 8) {
			t.Fatalf("vx=%v want 8", body.vel.X)
		}
	})

	t.Run("airborne_air_control", func(t *testing.T) {
		c, body, _, _ := newTestController(t, DefaultConfig())
		c.Step(Input{Horizontal: 1}, false)
		if !approx(body.vel.X, 6.4) {
			t.Fatalf("vx=%v want 6.4", body.vel.X)
		}
	})

	t.Run("grounded_jump", func(t *testing.T) {
		c, body, _, _ := newTestController(t, DefaultConfig())
		c.Step(Input{JumpPressed: true, JumpHeld: true}, true)
		if body.vel.Y != 12 {
			t.Fatalf("vy=%v want 12", body.vel.Y)
		}
		if !c.IsJumping() {
			t.Fatalf("expected jumping")
		}
	})

	t.Run("jump_cutoff_halves_each_step", func(t *testing.T) {
		c, body, _, _ := newTestController(t, DefaultConfig())
		c.Step(Input{JumpPressed: true, JumpHeld: true}, true)

		c.Step(Input{}, false)
		if body.vel.Y != 6 {
			t.Fatalf("first release step vy=%v want 6", body.vel.Y)
		}
		c.Step(Input{}, false)
		if body.vel.Y != 3 {
			t.Fatalf("second release step vy=%v want 3", body.vel.Y)
		}
	})

	t.Run("flip_then_hold", func(t *testing.T) {
		c, _, _, view := newTestController(t, DefaultConfig())
		c.Step(Input{Horizontal: -1}, true)
		if c.FacingRight() {
			t.Fatalf("expected facing left")
		}
		c.Step(Input{Horizontal: 0}, true)
		if c.FacingRight() {
			t.Fatalf("expected to stay facing left at h=0")
		}
		if view.flips != 1 {
			t.Fatalf("expected one flip, got %d", view.flips)
		}
	})
}

func TestFacing(t *testing.T) {
	cases := []struct {
		name      string
		start     bool
		h         float64
		wantRight bool
		wantFlips int
	}{
		{"right_stays_right", true, 1, true, 0},
		{"right_turns_left", true, -0.5, false, 1},
		{"left_turns_right", false, 0.2, true, 1},
		{"left_stays_left", false, -1, false, 0},
		{"right_zero", true, 0, true, 0},
		{"left_zero", false, 0, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.FacingRight = c.start
			ctrl, _, _, view := newTestController(t, cfg)
			ctrl.Step(Input{Horizontal: c.h}, true)
			if ctrl.FacingRight() != c.wantRight {
				t.Fatalf("facingRight=%v want %v", ctrl.FacingRight(), c.wantRight)
			}
			if view.flips != c.wantFlips {
				t.Fatalf("flips=%d want %d", view.flips, c.wantFlips)
			}
		})
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	c, body, _, view := newTestController(t, DefaultConfig())
	body.vel = common.Vec2{Y: -3}
	c.Step(Input{JumpPressed: true, JumpHeld: true}, false)
	if c.IsJumping() {
		t.Fatalf("jump fired while airborne")
	}
	if body.vel.Y != -3 {
		t.Fatalf("vy=%v want -3", body.vel.Y)
	}
	if last := view.params[len(view.params)-1]; last.Jump {
		t.Fatalf("presentation got a jump trigger while airborne")
	}
}

func TestJumpOverwritesVerticalVelocity(t *testing.T) {
	for _, prior := range []float64{-20, -0.5, 0} {
		c, body, _, _ := newTestController(t, DefaultConfig())
		body.vel = common.Vec2{Y: prior}
		c.Step(Input{JumpPressed: true, JumpHeld: true}, true)
		if body.vel.Y != 12 {
			t.Fatalf("prior vy=%v: got %v want 12", prior, body.vel.Y)
		}
	}
}

func TestJumpCutoffDecaysUntilNonPositive(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{JumpPressed: true, JumpHeld: true}, true)

	want := 12.0
	for i := 0; i < 10; i++ {
		c.Step(Input{}, false)
		want *= 0.5
		if body.vel.Y != want {
			t.Fatalf("step %d: vy=%v want %v", i, body.vel.Y, want)
		}
	}

	body.vel.Y = -1
	c.Step(Input{}, false)
	if body.vel.Y != -1 {
		t.Fatalf("cutoff touched falling velocity: %v", body.vel.Y)
	}
}

func TestJumpHeldKeepsVelocity(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{JumpPressed: true, JumpHeld: true}, true)
	c.Step(Input{JumpHeld: true}, false)
	if body.vel.Y != 12 {
		t.Fatalf("vy=%v want 12 while held", body.vel.Y)
	}
}

func TestLandingClearsJumping(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{JumpPressed: true, JumpHeld: true}, true)

	// still touching the ground on the way up
	c.Step(Input{JumpHeld: true}, true)
	if !c.IsJumping() {
		t.Fatalf("jump cleared while ascending")
	}

	body.vel.Y = -4
	c.Step(Input{JumpHeld: true}, false)
	if !c.IsJumping() {
		t.Fatalf("jump cleared while airborne")
	}

	body.vel.Y = 0
	c.Step(Input{JumpHeld: true}, true)
	if c.IsJumping() {
		t.Fatalf("jump not cleared on landing")
	}
}

func TestStateMachine(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{}, true)
	if got := c.State(); got != StateGrounded {
		t.Fatalf("state=%v want grounded", got)
	}

	c.Step(Input{JumpPressed: true, JumpHeld: true}, true)
	if got := c.State(); got != StateAirborneAscending {
		t.Fatalf("state=%v want ascending", got)
	}

	body.vel.Y = -1
	c.Step(Input{JumpHeld: true}, false)
	if got := c.State(); got != StateAirborneDescending {
		t.Fatalf("state=%v want descending", got)
	}

	body.vel.Y = 0
	c.Step(Input{}, true)
	if got := c.State(); got != StateGrounded {
		t.Fatalf("state=%v want grounded", got)
	}
}

func TestFixedUpdateConsumesJumpEdgeOnce(t *testing.T) {
	c, body, ground, _ := newTestController(t, DefaultConfig())
	ground.contact = true

	c.Sample(fakeInput{pressed: true, held: true})
	c.FixedUpdate()
	if body.vel.Y != 12 {
		t.Fatalf("vy=%v want 12", body.vel.Y)
	}

	// second fixed step in the same render frame: still grounded, pressed edge gone
	body.vel.Y = 0
	c.FixedUpdate()
	if body.vel.Y != 0 {
		t.Fatalf("jump fired twice for one press: vy=%v", body.vel.Y)
	}
}

func TestJumpEdgeSurvivesFrameWithoutFixedStep(t *testing.T) {
	c, body, ground, _ := newTestController(t, DefaultConfig())
	ground.contact = true

	c.Sample(fakeInput{pressed: true, held: true})
	// next render frame arrives before any fixed step ran
	c.Sample(fakeInput{held: true})
	c.FixedUpdate()
	if body.vel.Y != 12 {
		t.Fatalf("latched jump lost: vy=%v", body.vel.Y)
	}
}

func TestFixedUpdateQueriesFeetAnchor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundLayerMask = 0b100
	c, body, ground, _ := newTestController(t, cfg)
	body.pos = common.Vec2{X: 3, Y: 2}

	c.FixedUpdate()
	if len(ground.queries) != 1 {
		t.Fatalf("expected one ground query, got %d", len(ground.queries))
	}
	q := ground.queries[0]
	if q.anchor != (common.Vec2{X: 3, Y: 1.5}) {
		t.Fatalf("anchor=%v want {3 1.5}", q.anchor)
	}
	if q.radius != 0.3 || q.mask != 0b100 {
		t.Fatalf("radius=%v mask=%b", q.radius, q.mask)
	}
}

func TestPresentationParams(t *testing.T) {
	c, _, _, view := newTestController(t, DefaultConfig())
	c.Step(Input{Horizontal: -0.5, JumpPressed: true, JumpHeld: true}, true)

	if len(view.params) != 1 {
		t.Fatalf("expected one Animate call, got %d", len(view.params))
	}
	p := view.params[0]
	if p.Speed != 0.5 || !p.Grounded || p.VerticalVelocity != 12 || !p.Jump {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestIsMoving(t *testing.T) {
	c, _, _, _ := newTestController(t, DefaultConfig())
	c.SetInput(Input{Horizontal: 0.05})
	if c.IsMoving() {
		t.Fatalf("0.05 should not count as moving")
	}
	c.SetInput(Input{Horizontal: -0.2})
	if !c.IsMoving() {
		t.Fatalf("-0.2 should count as moving")
	}
}

func TestSetConfigKeepsStateAndRejectsInvalid(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{Horizontal: -1}, true)

	cfg := DefaultConfig()
	cfg.MoveSpeed = 4
	if err := c.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if c.FacingRight() {
		t.Fatalf("SetConfig reset facing")
	}
	c.Step(Input{Horizontal: 1}, true)
	if body.vel.X != 4 {
		t.Fatalf("vx=%v want 4", body.vel.X)
	}

	bad := cfg
	bad.AirControl = 0
	if err := c.SetConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if c.Config().AirControl != cfg.AirControl {
		t.Fatalf("invalid config was applied")
	}
}

// Out-of-range input is the input source's job to clamp; the controller
// passes it through unchanged.
func TestOutOfRangeInputIsNotClamped(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.Step(Input{Horizontal: 2}, true)
	if body.vel.X != 16 {
		t.Fatalf("vx=%v want 16 (unclamped)", body.vel.X)
	}
}

func TestSnapshot(t *testing.T) {
	c, body, _, _ := newTestController(t, DefaultConfig())
	c.SetInput(Input{Horizontal: 1, JumpPressed: true, JumpHeld: true})
	s := c.Snapshot()
	if !s.JumpPressed || !s.JumpHeld || s.HorizontalInput != 1 || !s.FacingRight {
		t.Fatalf("unexpected snapshot before step: %+v", s)
	}

	c.FixedUpdate()
	s = c.Snapshot()
	if s.JumpPressed {
		t.Fatalf("jump edge still latched after fixed step")
	}
	if s.Velocity != body.vel {
		t.Fatalf("snapshot velocity %v != body %v", s.Velocity, body.vel)
	}
}
