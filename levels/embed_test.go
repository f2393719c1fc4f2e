package levels

import (
	"testing"

	"github.com/milk9111/platformer/common"
)

func TestListEmbedded(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := map[string]bool{"flat": false, "tutorial": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Fatalf("expected embedded level %q in %v", n, names)
		}
	}
}

func TestLoadFlat(t *testing.T) {
	lvl, err := LoadLevelFromFS("levels/flat")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	if lvl.Name != "flat" || lvl.Width != 24 || lvl.Height != 8 {
		t.Fatalf("unexpected level header %q %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}
	if got := lvl.Spawn(); got != (common.Vec2{X: 4.5, Y: 2.5}) {
		t.Fatalf("spawn=%v want {4.5 2.5}", got)
	}

	solids := lvl.Solids()
	want := []Solid{
		{Min: common.Vec2{X: 0, Y: 0}, Max: common.Vec2{X: 1, Y: 8}},
		{Min: common.Vec2{X: 23, Y: 0}, Max: common.Vec2{X: 24, Y: 8}},
		{Min: common.Vec2{X: 1, Y: 0}, Max: common.Vec2{X: 23, Y: 1}},
	}
	if len(solids) != len(want) {
		t.Fatalf("got %d solids want %d: %+v", len(solids), len(want), solids)
	}
	for i := range want {
		if solids[i] != want[i] {
			t.Fatalf("solid %d = %+v want %+v", i, solids[i], want[i])
		}
	}
}

func TestTutorialHasPlatforms(t *testing.T) {
	lvl, err := LoadLevelFromFS("tutorial.json")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	platforms := 0
	for _, s := range lvl.Solids() {
		if s.Width() <= 0 || s.Height() <= 0 {
			t.Fatalf("degenerate solid %+v", s)
		}
		if s.Platform {
			platforms++
		}
	}
	if platforms != 3 {
		t.Fatalf("expected 3 platform solids, got %d", platforms)
	}
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not_json", `{`},
		{"zero_size", `{"width":0,"height":3}`},
		{"short_layer", `{"width":2,"height":2,"layers":[[1,1,1]]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseDefaultsTileSize(t *testing.T) {
	lvl, err := Parse([]byte(`{"width":2,"height":1,"layers":[[1,0]],"layer_meta":[{"physics":true}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.TileSize != 1 {
		t.Fatalf("tile size=%v want 1", lvl.TileSize)
	}
	s := lvl.Solids()
	if len(s) != 1 || s[0].Max != (common.Vec2{X: 1, Y: 1}) {
		t.Fatalf("unexpected solids %+v", s)
	}
}

func TestLayerMask(t *testing.T) {
	cases := []struct {
		name    string
		in      []string
		want    uint32
		wantErr bool
	}{
		{"ground", []string{"ground"}, LayerGround, false},
		{"ground_and_platform", []string{"Ground", " platform"}, LayerGround | LayerPlatform, false},
		{"empty", nil, 0, false},
		{"unknown", []string{"water"}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := LayerMask(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, c.wantErr)
			}
			if got != c.want {
				t.Fatalf("mask=%b want %b", got, c.want)
			}
		})
	}
}
