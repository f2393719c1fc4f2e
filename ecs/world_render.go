package ecs

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
)

// View maps y-up world units onto a y-down screen centered on a camera.
type View struct {
	Center        common.Vec2
	PixelsPerUnit float64
	ScreenW       float64
	ScreenH       float64
}

// WorldToScreen converts a world point to screen pixels.
func (v View) WorldToScreen(p common.Vec2) (float64, float64) {
	x := (p.X-v.Center.X)*v.PixelsPerUnit + v.ScreenW/2
	y := v.ScreenH/2 - (p.Y-v.Center.Y)*v.PixelsPerUnit
	return x, y
}

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image, view View)
}

// Renderers is an ordered list of render systems.
type Renderers []RenderSystem

// Draw calls every render system in order.
func (r Renderers) Draw(w *World, screen *ebiten.Image, view View) {
	if w == nil || screen == nil {
		return
	}
	for _, rs := range r {
		if rs != nil {
			rs.Draw(w, screen, view)
		}
	}
}
