package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile = "player.yaml"
	CameraFile = "camera.yaml"
	WorldFile  = "world.yaml"
)

// LoadSpec decodes a prefab file into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := LoadSpecInto(filename, &spec)
	return spec, err
}

// LoadSpecInto decodes a prefab file over spec, keeping fields the file omits.
func LoadSpecInto(filename string, spec any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vec2() common.Vec2 { return common.Vec2{X: v.X, Y: v.Y} }

type GroundCheckSpec struct {
	Radius float64  `yaml:"radius"`
	Offset VecSpec  `yaml:"offset"`
	Layers []string `yaml:"layers"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type SpriteSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Accent *YAMLColor `yaml:"accent"`
}

type AnimationSpec struct {
	// SquashScale is the vertical scale at the start of a landing squash.
	SquashScale    float64 `yaml:"squash_scale"`
	SquashDuration float64 `yaml:"squash_duration"`
}

type PlayerSpec struct {
	Name              string          `yaml:"name"`
	MoveSpeed         float64         `yaml:"move_speed"`
	JumpForce         float64         `yaml:"jump_force"`
	AirControl        float64         `yaml:"air_control"`
	JumpCutMultiplier float64         `yaml:"jump_cut_multiplier"`
	FacingRight       bool            `yaml:"facing_right"`
	GroundCheck       GroundCheckSpec `yaml:"ground_check"`
	Collider          ColliderSpec    `yaml:"collider"`
	Sprite            SpriteSpec      `yaml:"sprite"`
	Animation         AnimationSpec   `yaml:"animation"`
}

// DefaultPlayerSpec mirrors motion.DefaultConfig plus a one-unit body.
func DefaultPlayerSpec() PlayerSpec {
	cfg := motion.DefaultConfig()
	return PlayerSpec{
		Name:              "player",
		MoveSpeed:         cfg.MoveSpeed,
		JumpForce:         cfg.JumpForce,
		AirControl:        cfg.AirControl,
		JumpCutMultiplier: cfg.JumpCutMultiplier,
		FacingRight:       cfg.FacingRight,
		GroundCheck: GroundCheckSpec{
			Radius: cfg.GroundCheckRadius,
			Offset: VecSpec{X: cfg.GroundCheckOffset.X, Y: cfg.GroundCheckOffset.Y},
			Layers: []string{"ground"},
		},
		Collider:  ColliderSpec{Width: 0.8, Height: 1, Mass: 1},
		Sprite:    SpriteSpec{Width: 0.8, Height: 1},
		Animation: AnimationSpec{SquashScale: 0.7, SquashDuration: 0.15},
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(PlayerFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// MotionConfig converts the spec to validated controller tuning.
func (s PlayerSpec) MotionConfig() (motion.Config, error) {
	mask, err := levels.LayerMask(s.GroundCheck.Layers)
	if err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: player ground check: %w", err)
	}
	cfg := motion.Config{
		MoveSpeed:         s.MoveSpeed,
		JumpForce:         s.JumpForce,
		AirControl:        s.AirControl,
		GroundCheckRadius: s.GroundCheck.Radius,
		GroundLayerMask:   mask,
		GroundCheckOffset: s.GroundCheck.Offset.Vec2(),
		JumpCutMultiplier: s.JumpCutMultiplier,
		FacingRight:       s.FacingRight,
	}
	if err := cfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: player: %w", err)
	}
	return cfg, nil
}

type BoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

type CameraSpec struct {
	Name       string     `yaml:"name"`
	Target     string     `yaml:"target"`
	SmoothTime float64    `yaml:"smooth_time"`
	Offset     VecSpec    `yaml:"offset"`
	UseBounds  bool       `yaml:"use_bounds"`
	Bounds     BoundsSpec `yaml:"bounds"`
}

func DefaultCameraSpec() CameraSpec {
	cfg := camera.DefaultConfig()
	return CameraSpec{
		Name:       "camera",
		Target:     "player",
		SmoothTime: cfg.SmoothTime,
		Offset:     VecSpec{X: cfg.Offset.X, Y: cfg.Offset.Y},
		UseBounds:  cfg.UseBounds,
		Bounds: BoundsSpec{
			MinX: cfg.Bounds.MinX,
			MaxX: cfg.Bounds.MaxX,
			MinY: cfg.Bounds.MinY,
			MaxY: cfg.Bounds.MaxY,
		},
	}
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec := DefaultCameraSpec()
	if err := LoadSpecInto(CameraFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s CameraSpec) CameraConfig() (camera.Config, error) {
	if s.SmoothTime < 0 {
		return camera.Config{}, fmt.Errorf("prefabs: camera: negative smooth time %v", s.SmoothTime)
	}
	b := camera.Bounds{MinX: s.Bounds.MinX, MaxX: s.Bounds.MaxX, MinY: s.Bounds.MinY, MaxY: s.Bounds.MaxY}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return camera.Config{}, fmt.Errorf("prefabs: camera: %w: %+v", camera.ErrInvalidBounds, b)
	}
	return camera.Config{
		SmoothTime: s.SmoothTime,
		Offset:     s.Offset.Vec2(),
		UseBounds:  s.UseBounds,
		Bounds:     b,
	}, nil
}

type WorldSpec struct {
	Level         string  `yaml:"level"`
	Gravity       float64 `yaml:"gravity"`
	FixedStep     float64 `yaml:"fixed_step"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

func DefaultWorldSpec() WorldSpec {
	return WorldSpec{
		Level:         "tutorial",
		Gravity:       -30,
		FixedStep:     common.DefaultFixedStep,
		PixelsPerUnit: common.DefaultPixelsPerUnit,
	}
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec := DefaultWorldSpec()
	if err := LoadSpecInto(WorldFile, &spec); err != nil {
		return nil, err
	}
	if spec.FixedStep <= 0 {
		return nil, fmt.Errorf("prefabs: world: fixed step must be positive, got %v", spec.FixedStep)
	}
	if spec.PixelsPerUnit <= 0 {
		return nil, fmt.Errorf("prefabs: world: pixels per unit must be positive, got %v", spec.PixelsPerUnit)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color, or fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
