package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"golang.org/x/image/colornames"
)

// LevelRenderer draws the merged solids of a level.
type LevelRenderer struct {
	solids []levels.Solid
}

func NewLevelRenderer(level *levels.Level) *LevelRenderer {
	if level == nil {
		return &LevelRenderer{}
	}
	return &LevelRenderer{solids: level.Solids()}
}

func (r *LevelRenderer) Draw(w *ecs.World, screen *ebiten.Image, view ecs.View) {
	for _, s := range r.solids {
		fill := colornames.Slategray
		if s.Platform {
			fill = colornames.Peru
		}
		drawWorldRect(screen, view, s.Min, s.Max, fill)
	}
}

// SpriteRenderer draws every sprite as a box around its transform, with an
// accent strip on the side the entity faces.
type SpriteRenderer struct{}

func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{}
}

func (r *SpriteRenderer) Draw(w *ecs.World, screen *ebiten.Image, view ecs.View) {
	for _, e := range w.Query(component.SpriteComponent.Kind(), component.TransformComponent.Kind()) {
		sprite, _ := ecs.Get(w, e, component.SpriteComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)

		scaleY := t.ScaleY
		if scaleY == 0 {
			scaleY = 1
		}
		halfW := sprite.Width / 2
		h := sprite.Height * scaleY
		// squash keeps the feet planted
		feet := t.Y - sprite.Height/2
		lo := common.Vec2{X: t.X - halfW, Y: feet}
		hi := common.Vec2{X: t.X + halfW, Y: feet + h}
		drawWorldRect(screen, view, lo, hi, sprite.Color)

		strip := sprite.Width * 0.2
		if t.ScaleX < 0 {
			drawWorldRect(screen, view, lo, common.Vec2{X: lo.X + strip, Y: hi.Y}, sprite.Accent)
		} else {
			drawWorldRect(screen, view, common.Vec2{X: hi.X - strip, Y: lo.Y}, hi, sprite.Accent)
		}
	}
}

func drawWorldRect(screen *ebiten.Image, view ecs.View, lo, hi common.Vec2, clr color.Color) {
	x0, y0 := view.WorldToScreen(common.Vec2{X: lo.X, Y: hi.Y})
	x1, y1 := view.WorldToScreen(common.Vec2{X: hi.X, Y: lo.Y})
	vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), clr, false)
}
