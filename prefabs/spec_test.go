package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

func TestLoadPlayerSpecEmbedded(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	cfg, err := spec.MotionConfig()
	if err != nil {
		t.Fatalf("MotionConfig: %v", err)
	}
	def := motion.DefaultConfig()
	if cfg.MoveSpeed != def.MoveSpeed || cfg.JumpForce != def.JumpForce || cfg.AirControl != def.AirControl {
		t.Fatalf("unexpected tuning %+v", cfg)
	}
	if cfg.GroundLayerMask != levels.LayerGround|levels.LayerPlatform {
		t.Fatalf("mask=%b", cfg.GroundLayerMask)
	}
	if got := spec.Sprite.Color.RGBA8(color.RGBA{}); got != (color.RGBA{R: 0x4f, G: 0xa3, B: 0xe0, A: 0xff}) {
		t.Fatalf("sprite color=%v", got)
	}
}

func TestMotionConfigRejectsBadTuning(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlayerSpec)
	}{
		{"air_control_zero", func(s *PlayerSpec) { s.AirControl = 0 }},
		{"negative_speed", func(s *PlayerSpec) { s.MoveSpeed = -1 }},
		{"unknown_layer", func(s *PlayerSpec) { s.GroundCheck.Layers = []string{"lava"} }},
		{"no_layers", func(s *PlayerSpec) { s.GroundCheck.Layers = nil }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := DefaultPlayerSpec()
			c.mutate(&spec)
			if _, err := spec.MotionConfig(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPartialSpecKeepsDefaults(t *testing.T) {
	spec := DefaultPlayerSpec()
	if err := yaml.Unmarshal([]byte("move_speed: 5\n"), &spec); err != nil {
		t.Fatal(err)
	}
	cfg, err := spec.MotionConfig()
	if err != nil {
		t.Fatalf("MotionConfig: %v", err)
	}
	if cfg.MoveSpeed != 5 || cfg.JumpForce != 12 || cfg.GroundCheckRadius != 0.3 {
		t.Fatalf("unexpected tuning %+v", cfg)
	}
}

func TestCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	cfg, err := spec.CameraConfig()
	if err != nil {
		t.Fatalf("CameraConfig: %v", err)
	}
	if cfg != camera.DefaultConfig() {
		t.Fatalf("camera.yaml drifted from defaults: %+v", cfg)
	}

	bad := DefaultCameraSpec()
	bad.Bounds.MinX, bad.Bounds.MaxX = 1, 0
	if _, err := bad.CameraConfig(); !errors.Is(err, camera.ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	if spec.FixedStep != 0.02 || spec.Gravity >= 0 || spec.Level == "" {
		t.Fatalf("unexpected world spec %+v", spec)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{`"#ff0000"`, color.RGBA{R: 255, A: 255}, false},
		{`"00ff0080"`, color.RGBA{G: 128, A: 128}, false},
		{`"#abc"`, color.RGBA{}, true},
		{`"zzzzzz"`, color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var col YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &col)
			if (err != nil) != c.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, c.wantErr)
			}
			if err == nil && col.RGBA8(color.RGBA{}) != c.want {
				t.Fatalf("got %v want %v", col.RGBA8(color.RGBA{}), c.want)
			}
		})
	}
}

func TestScriptPaths(t *testing.T) {
	cases := map[string]string{
		"demo":                      "scripts/demo.tengo",
		"demo.tengo":                "scripts/demo.tengo",
		"scripts/demo.tengo":        "scripts/demo.tengo",
		"prefabs/scripts/hop.tengo": "scripts/hop.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q)=%q want %q", in, got, want)
		}
	}
	if _, err := LoadScript("demo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	names, err := ListScripts()
	if err != nil || len(names) < 3 {
		t.Fatalf("ListScripts=%v err=%v", names, err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	defer func() { Dir = old }()

	if err := os.WriteFile(filepath.Join(dir, PlayerFile), []byte("move_speed: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.MoveSpeed != 3 || spec.JumpForce != 12 {
		t.Fatalf("disk override not applied: %+v", spec)
	}
	if _, ok := ModTime(PlayerFile); !ok {
		t.Fatalf("expected mod time for disk prefab")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, CameraFile), []byte("smooth_time: 0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ch := <-w.Events:
		if ch.Name != CameraFile || ch.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", ch)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/player.yaml", ChangeSpec, true},
		{"prefabs/x.YML", ChangeSpec, true},
		{"prefabs/scripts/demo.tengo", ChangeScript, true},
		{"prefabs/readme.md", 0, false},
	}
	for _, c := range cases {
		got, ok := classify(c.path)
		if ok != c.ok || (ok && got.Kind != c.kind) {
			t.Fatalf("classify(%q)=%+v,%v", c.path, got, ok)
		}
	}
}
