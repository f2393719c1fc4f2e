package ecs

import (
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

func loadFlat(t *testing.T) *levels.Level {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS("flat")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	return lvl
}

func TestPhysicsWorldBuildsLevelShapes(t *testing.T) {
	pw := NewPhysicsWorld(loadFlat(t), -30)
	// three merged solids plus four bound segments
	if got := pw.StaticShapeCount(); got != 7 {
		t.Fatalf("static shapes=%d want 7", got)
	}
}

func TestPhysicsWorldBodyFallsAndRests(t *testing.T) {
	lvl := loadFlat(t)
	pw := NewPhysicsWorld(lvl, -30)
	w := NewWorld()
	e := w.CreateEntity()

	spawn := lvl.Spawn()
	pb := pw.AddBox(e, spawn, component.PhysicsBody{Width: 0.8, Height: 1, Mass: 1}, component.CollisionLayer{})
	if pb.Body == nil || pb.Shape == nil {
		t.Fatalf("AddBox did not create a body")
	}
	if got, ok := pw.EntityForShape(pb.Shape); !ok || got != e {
		t.Fatalf("shape not mapped to entity")
	}

	body := NewBody(pb.Body)
	anchor := func() common.Vec2 { return body.Position().Add(common.Vec2{Y: -0.5}) }
	if pw.QueryGroundContact(anchor(), 0.3, component.LayerGround) {
		t.Fatalf("grounded at spawn height %v", body.Position())
	}

	for i := 0; i < 150; i++ {
		pw.Step(common.DefaultFixedStep)
	}

	pos := body.Position()
	if pos.Y < 1.35 || pos.Y > 1.55 {
		t.Fatalf("expected body resting on the floor, y=%v", pos.Y)
	}
	if !pw.QueryGroundContact(anchor(), 0.3, component.LayerGround) {
		t.Fatalf("expected ground contact at %v", anchor())
	}
	if pw.QueryGroundContact(anchor(), 0.3, component.LayerPlatform) {
		t.Fatalf("platform mask should not see ground tiles")
	}
}

func TestPhysicsWorldBodyAdapterVelocity(t *testing.T) {
	pw := NewPhysicsWorld(loadFlat(t), 0)
	w := NewWorld()
	pb := pw.AddBox(w.CreateEntity(), common.Vec2{X: 10, Y: 4}, component.PhysicsBody{Width: 0.8, Height: 1}, component.CollisionLayer{})
	body := NewBody(pb.Body)

	body.SetVelocity(common.Vec2{X: 2, Y: 0})
	if body.Velocity() != (common.Vec2{X: 2}) {
		t.Fatalf("velocity=%v", body.Velocity())
	}
	pw.Step(0.5)
	if got := body.Position().X; got < 10.9 || got > 11.1 {
		t.Fatalf("expected integration to x~11, got %v", got)
	}

	pw.RemoveBody(pb)
	if _, ok := pw.EntityForShape(pb.Shape); ok {
		t.Fatalf("removed shape still mapped")
	}
}

func TestViewWorldToScreen(t *testing.T) {
	v := View{Center: common.Vec2{X: 10, Y: 5}, PixelsPerUnit: 32, ScreenW: 640, ScreenH: 480}
	x, y := v.WorldToScreen(common.Vec2{X: 11, Y: 6})
	if x != 352 || y != 208 {
		t.Fatalf("got (%v, %v) want (352, 208)", x, y)
	}
}
