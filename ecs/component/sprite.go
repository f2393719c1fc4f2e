package component

import "image/color"

// Sprite is a solid box drawn around the transform, in world units.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.RGBA
	// Accent marks the facing side.
	Accent color.RGBA
}

var SpriteComponent = NewComponent[Sprite]()
