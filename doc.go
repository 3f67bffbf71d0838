// Package gui is a retained-mode 2D scene graph for user interfaces.
//
// A [Context] holds the display resolution and the callbacks shared by its
// scenes. A [Scene] owns a fixed pool of nodes, the animations running on
// them and the texture, font and layer registries they reference.
//
// # Quick start
//
//	ctx := gui.NewContext(gui.ContextParams{Width: 640, Height: 960})
//	scene := ctx.NewScene(gui.SceneParams{MaxNodes: 256})
//
//	panel, _ := scene.NewBoxNode(mgl32.Vec3{320, 480, 0}, mgl32.Vec3{200, 100, 0})
//	label, _ := scene.NewTextNode(mgl32.Vec3{0, 0, 0}, "Hello")
//	_ = scene.SetNodeParent(label, panel)
//
//	// Every frame:
//	_ = scene.Update(dt)
//	_ = scene.Render(func(s *gui.Scene, nodes []gui.HNode, m []mgl32.Mat4, _ any) {
//		// draw nodes[i] with transform m[i]
//	}, nil)
//
// The draw subpackage provides a ready-made ebiten renderer, textmetrics
// measures text with golang.org/x/image faces, and input routes pointer
// events to the nodes under them.
//
// # Nodes and handles
//
// Nodes are addressed by [HNode] handles that encode a slot index and the
// slot's version. Deleting a node unlinks it and its subtree immediately;
// the slots are reclaimed at the start of the next [Scene.Update], after
// which the old handles report [ErrInvalidHandle] instead of aliasing a new
// node.
//
// # Coordinates and transforms
//
// Scenes are y-up with the origin at the bottom-left. Each node has a
// position relative to its parent, a rotation in degrees, a scale and a
// size. The pivot decides which point of the node's rectangle sits at its
// position. Top-level nodes are additionally scaled from the design
// resolution to the physical one according to their [AdjustMode], and may
// be anchored to a screen edge.
//
// # Animation
//
// [Scene.AnimateNode] tweens a property towards a target with a gween easing
// curve, an optional delay and one of the [Playback] modes. Completion and
// cancellation are reported through an optional callback.
//
// # Render order
//
// [Scene.Render] emits enabled nodes sorted by layer, then by tree order:
// parents before children, earlier siblings first.
//
// # Debug mode
//
// [Scene.SetDebugMode] prints per-frame timings and hierarchy warnings to
// stderr.
package gui
