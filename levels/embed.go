package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/platformer/common"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile grid stored as JSON. Row 0 of every layer is the top row.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
	// Platform puts the layer's solids on the platform collision layer
	// instead of the ground layer.
	Platform bool   `json:"platform,omitempty"`
	Color    string `json:"color,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Solid is a merged block of physics tiles in world units.
type Solid struct {
	Min      common.Vec2
	Max      common.Vec2
	Platform bool
}

func (s Solid) Width() float64  { return s.Max.X - s.Min.X }
func (s Solid) Height() float64 { return s.Max.Y - s.Min.Y }

// List returns the names of the embedded levels without extension.
func List() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadLevelFromFS loads an embedded level by basename; the .json extension is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	clean := strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "levels/")
	if path.Ext(clean) == "" {
		clean += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return lvl, nil
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 1
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// Bounds returns the world-space extent of the level.
func (l *Level) Bounds() (lo, hi common.Vec2) {
	return common.Vec2{}, common.Vec2{X: float64(l.Width) * l.TileSize, Y: float64(l.Height) * l.TileSize}
}

// Spawn returns the center of the spawn tile, falling back to the top-left
// area when the level has none.
func (l *Level) Spawn() common.Vec2 {
	for _, e := range l.Entities {
		if e.Type == "spawn" {
			return l.TileCenter(e.X, e.Y)
		}
	}
	return l.TileCenter(1, 1)
}

// TileCenter converts tile coordinates (row 0 at the top) to a world point.
func (l *Level) TileCenter(x, row int) common.Vec2 {
	return common.Vec2{
		X: (float64(x) + 0.5) * l.TileSize,
		Y: (float64(l.Height-1-row) + 0.5) * l.TileSize,
	}
}

// Solids merges the tiles of every physics layer into rectangles.
func (l *Level) Solids() []Solid {
	var out []Solid
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		out = append(out, l.mergeTiles(layer, l.LayerMeta[i].Platform)...)
	}
	return out
}

// mergeTiles greedily grows rectangles right then down over non-zero tiles.
func (l *Level) mergeTiles(layer []int, platform bool) []Solid {
	var out []Solid
	processed := make([]bool, l.Width*l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] {
				continue
			}
			if layer[idx] == 0 {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + (x + w)
				if processed[idx2] || layer[idx2] == 0 {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*l.Width + xi
					if processed[idx2] || layer[idx2] == 0 {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}

			ts := l.TileSize
			out = append(out, Solid{
				Min:      common.Vec2{X: float64(x) * ts, Y: float64(l.Height-y-h) * ts},
				Max:      common.Vec2{X: float64(x+w) * ts, Y: float64(l.Height-y) * ts},
				Platform: platform,
			})
		}
	}
	return out
}
