package levels

import (
	"fmt"
	"strings"
)

// Collision layer bits shared by level geometry and characters.
const (
	LayerGround   uint32 = 1 << 0
	LayerPlatform uint32 = 1 << 1
	LayerPlayer   uint32 = 1 << 2
)

var layerNames = map[string]uint32{
	"ground":   LayerGround,
	"platform": LayerPlatform,
	"player":   LayerPlayer,
}

// LayerMask ORs the named layers together.
func LayerMask(names []string) (uint32, error) {
	var mask uint32
	for _, n := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("levels: unknown layer %q", n)
		}
		mask |= bit
	}
	return mask, nil
}

// Layer returns the collision category of a solid.
func (s Solid) Layer() uint32 {
	if s.Platform {
		return LayerPlatform
	}
	return LayerGround
}
