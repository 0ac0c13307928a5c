// Package balloons is the layout and animation engine behind a balloon
// gallery: every stored message floats as a balloon in a 3D sky.
//
// The engine has two halves. A [Layout] places N balloons inside a cube so
// that no two are closer than a minimum distance, falling back to a grid
// when random placement runs out of attempts. A [Field] owns one list of
// [Item] records, raises each balloon from below the horizon toward its
// target a little every frame, and picks the balloons nearest to the viewer
// for rendering.
//
// # Quick start
//
//	field := balloons.NewField(balloons.DefaultFieldConfig())
//	field.SetItems(items)
//
//	// once per frame
//	frame := field.Step(camera.Position())
//	for _, p := range field.VisibleItems() {
//		// draw p.Item at p.Position
//	}
//
// Nothing here blocks or does I/O, and nothing is safe for concurrent use:
// a Field belongs to the single game loop that steps it.
//
// # Visibility
//
// With more than [FieldConfig.VisibleCount] items the field ranks items by
// distance to the viewer each frame. The default [WindowStrategy] renders
// the contiguous index range that envelops the K nearest items;
// [NearestStrategy] renders exactly those K.
//
// The gallery renderer lives in package gallery, message persistence in
// package store, and the ECS bridge in package ecs.
package balloons
