package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewCamera loads camera.yaml and builds a camera following the entity the
// spec names.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	target, err := ResolveTarget(w, spec.Target)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return NewCameraFromSpec(w, spec, target)
}

func NewCameraFromSpec(w *ecs.World, spec *prefabs.CameraSpec, target camera.Target) (ecs.Entity, error) {
	cfg, err := spec.CameraConfig()
	if err != nil {
		return 0, err
	}
	follow, err := camera.NewFollow(cfg, target)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	cam := w.CreateEntity()
	pos := follow.Position()
	if err := ecs.Add(w, cam, component.CameraTagComponent, component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent, component.Camera{Follow: follow}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return cam, nil
}

// ResolveTarget maps a camera target name to a body in the world. Only the
// player is addressable by name.
func ResolveTarget(w *ecs.World, name string) (camera.Target, error) {
	if strings.TrimSpace(name) != "player" {
		return nil, fmt.Errorf("%w: unknown target %q", camera.ErrNilTarget, name)
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: no player in world", camera.ErrNilTarget)
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent)
	if !ok || body.Body == nil {
		return nil, fmt.Errorf("%w: player has no body", camera.ErrNilTarget)
	}
	return ecs.NewBody(body.Body), nil
}

// ApplyCameraSpec retunes every live camera, keeping position and velocity.
func ApplyCameraSpec(w *ecs.World, spec *prefabs.CameraSpec) error {
	cfg, err := spec.CameraConfig()
	if err != nil {
		return err
	}
	var applyErr error
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if c.Follow == nil || applyErr != nil {
			return
		}
		applyErr = c.Follow.SetConfig(cfg)
	})
	return applyErr
}

// ToggleCameraBounds flips bounds clamping on every camera, using the
// configured rectangle. It returns the new state.
func ToggleCameraBounds(w *ecs.World) bool {
	enabled := false
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if c.Follow == nil {
			return
		}
		if c.Follow.BoundsEnabled() {
			c.Follow.ClearBounds()
			return
		}
		b := c.Follow.Config().Bounds
		if err := c.Follow.SetBounds(b.MinX, b.MaxX, b.MinY, b.MaxY); err == nil {
			enabled = true
		}
	})
	return enabled
}
