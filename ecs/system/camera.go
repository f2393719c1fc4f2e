package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem advances every camera follow once per frame, after the fixed
// steps, and mirrors the result onto the camera's transform.
type CameraSystem struct {
	dt float64
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: dt}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Follow == nil {
			return
		}
		pos := cam.Follow.Update(cs.dt)
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.X, t.Y = pos.X, pos.Y
			_ = ecs.Add(w, e, component.TransformComponent, t)
		}
	})
}

// CameraView builds the render view from the first camera in the world. With
// no camera it centers on the origin.
func CameraView(w *ecs.World, pixelsPerUnit, screenW, screenH float64) ecs.View {
	view := ecs.View{PixelsPerUnit: pixelsPerUnit, ScreenW: screenW, ScreenH: screenH}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return view
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent); ok && cam.Follow != nil {
		view.Center = cam.Follow.Position()
		return view
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent); ok {
		view.Center = common.Vec2{X: t.X, Y: t.Y}
	}
	return view
}
