package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"golang.org/x/image/colornames"
)

const debugDotSize = 0.1

// GroundGizmoRenderer draws each controller's ground check circle, green
// while grounded and red otherwise, plus its velocity.
type GroundGizmoRenderer struct{}

func NewGroundGizmoRenderer() *GroundGizmoRenderer {
	return &GroundGizmoRenderer{}
}

func (r *GroundGizmoRenderer) Draw(w *ecs.World, screen *ebiten.Image, view ecs.View) {
	for _, e := range w.Query(component.MotionComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		m, _ := ecs.Get(w, e, component.MotionComponent)
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if m.Controller == nil || body.Body == nil {
			continue
		}

		cfg := m.Controller.Config()
		p := body.Body.Position()
		pos := common.Vec2{X: p.X, Y: p.Y}
		anchor := pos.Add(cfg.GroundCheckOffset)

		clr := colornames.Red
		if m.Controller.IsGrounded() {
			clr = colornames.Lime
		}
		cx, cy := view.WorldToScreen(anchor)
		radius := float32(cfg.GroundCheckRadius * view.PixelsPerUnit)
		vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 1, clr, true)

		v := m.Controller.Snapshot().Velocity
		x0, y0 := view.WorldToScreen(pos)
		x1, y1 := view.WorldToScreen(pos.Add(v.Scale(0.1)))
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, colornames.Yellow, true)
	}
}

// StateOverlayRenderer prints the player's motion state in the corner.
type StateOverlayRenderer struct{}

func NewStateOverlayRenderer() *StateOverlayRenderer {
	return &StateOverlayRenderer{}
}

func (r *StateOverlayRenderer) Draw(w *ecs.World, screen *ebiten.Image, view ecs.View) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	m, ok := ecs.Get(w, player, component.MotionComponent)
	if !ok || m.Controller == nil {
		return
	}
	s := m.Controller.Snapshot()
	text := fmt.Sprintf("State: %s\nGrounded: %v\nJumping: %v\nFacingRight: %v\nVelocity: (%.2f, %.2f)\nTPS: %.0f",
		m.Controller.State(), s.IsGrounded, s.IsJumping, s.FacingRight, s.Velocity.X, s.Velocity.Y, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// PhysicsDebugRenderer outlines every Chipmunk shape in the space.
type PhysicsDebugRenderer struct {
	space *cp.Space
}

func NewPhysicsDebugRenderer(space *cp.Space) *PhysicsDebugRenderer {
	return &PhysicsDebugRenderer{space: space}
}

func (r *PhysicsDebugRenderer) Draw(w *ecs.World, screen *ebiten.Image, view ecs.View) {
	if r.space == nil {
		return
	}
	cp.DrawSpace(r.space, &physicsDebugDrawer{screen: screen, view: view})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   ecs.View
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.StrokeCircle(d.screen, x, y, float32(radius*d.view.PixelsPerUnit), 1, toNRGBA(outline), true)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	x, y := d.view.WorldToScreen(common.Vec2{X: v.X, Y: v.Y})
	return float32(x), float32(y)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
