package script

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/prefabs"
)

// ErrNoTick is returned when a script does not define a callable tick.
var ErrNoTick = errors.New("script: tick function not defined")

// tick(t) returns a map with "move" (number) and "jump" (bool, held state).
const tickDispatchScript = `
__out = tick(__tick)
`

// Frame is the input produced by one tick of a script.
type Frame struct {
	Move        float64
	JumpPressed bool
	JumpHeld    bool
}

// InputSource replays input produced by a tengo script. Each Advance runs the
// script's tick function once; the Sample methods report the latest frame.
type InputSource struct {
	name     string
	compiled *tengo.Compiled
	tick     int
	frame    Frame
}

// Load compiles an embedded script by name, e.g. "demo" or "scripts/demo.tengo".
func Load(name string) (*InputSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile builds an input source from tengo source.
func Compile(name string, src []byte) (*InputSource, error) {
	if err := checkTick(src); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}

	full := string(src) + "\n" + tickDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__tick", 0)
	_ = s.Add("__out", nil)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &InputSource{name: name, compiled: compiled}, nil
}

// checkTick runs the top level of src once to see whether it defines tick.
func checkTick(src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Run()
	if err != nil {
		return err
	}
	if !compiled.IsDefined("tick") || !compiled.Get("tick").Object().CanCall() {
		return ErrNoTick
	}
	return nil
}

func (s *InputSource) Name() string { return s.name }

// Tick is the number of completed Advance calls.
func (s *InputSource) Tick() int { return s.tick }

func (s *InputSource) Frame() Frame { return s.frame }

// Advance runs tick once and updates the current frame. A jump press is
// reported on the first tick the script holds jump.
func (s *InputSource) Advance() error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("script: nil input source")
	}
	if err := s.compiled.Set("__tick", s.tick); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: tick %d: %w", s.name, s.tick, err)
	}

	out := s.compiled.Get("__out").Map()
	move, err := number(out["move"])
	if err != nil {
		return fmt.Errorf("script: %s: tick %d: move: %w", s.name, s.tick, err)
	}
	held, _ := out["jump"].(bool)

	s.frame = Frame{
		Move:        move,
		JumpPressed: held && !s.frame.JumpHeld,
		JumpHeld:    held,
	}
	s.tick++
	return nil
}

// Reset rewinds the script to tick zero.
func (s *InputSource) Reset() {
	s.tick = 0
	s.frame = Frame{}
}

func (s *InputSource) SampleHorizontal() float64 { return s.frame.Move }
func (s *InputSource) SampleJumpPressed() bool   { return s.frame.JumpPressed }
func (s *InputSource) SampleJumpHeld() bool      { return s.frame.JumpHeld }

func number(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
}

// BaseName strips directories and the .tengo extension from a script name.
func BaseName(name string) string {
	return strings.TrimSuffix(path.Base(filepath.ToSlash(name)), ".tengo")
}
