package gui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setupBenchScene creates a scene with n box nodes, grouped ten to a parent
// and spread over two layers.
func setupBenchScene(b *testing.B, n int) (*Scene, []HNode) {
	b.Helper()
	s := newTestContext().NewScene(SceneParams{MaxNodes: n + n/10 + 1, MaxAnimations: 4 * n})
	s.AddLayer("back")
	s.AddLayer("front")
	nodes := make([]HNode, 0, n)
	var parent HNode
	for i := 0; i < n; i++ {
		if i%10 == 0 {
			parent = mustBox(b, s, mgl32.Vec3{float32(i%100) * 40, float32(i/100) * 40, 0}, mgl32.Vec3{})
		}
		h := mustBox(b, s, mgl32.Vec3{float32(i % 10), 0, 0}, mgl32.Vec3{32, 32, 0})
		_ = s.SetNodeParent(h, parent)
		if i%2 == 0 {
			_ = s.SetNodeLayer(h, "front")
		} else {
			_ = s.SetNodeLayer(h, "back")
		}
		nodes = append(nodes, h)
	}
	return s, nodes
}

func noopRender(*Scene, []HNode, []mgl32.Mat4, any) {}

func BenchmarkRender_5000Boxes_Static(b *testing.B) {
	s, _ := setupBenchScene(b, 5000)
	// Warm up: the first render sizes the sort buffer.
	_ = s.Render(noopRender, nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Render(noopRender, nil)
	}
}

func BenchmarkRender_5000Boxes_Rotating(b *testing.B) {
	s, nodes := setupBenchScene(b, 5000)
	_ = s.Render(noopRender, nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j, h := range nodes {
			_ = s.SetNodeRotation(h, mgl32.Vec3{0, 0, float32(i + j)})
		}
		_ = s.Render(noopRender, nil)
	}
}

func BenchmarkUpdate_1000Animations(b *testing.B) {
	s, nodes := setupBenchScene(b, 250)
	for _, h := range nodes {
		_ = s.AnimateNode(h, PropertyPosition, mgl32.Vec4{100, 100, 0, 1}, EaseInOutQuad, 2, 0, PlaybackLoopPingPong, nil, nil, nil)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Update(1.0 / 60)
	}
}

func BenchmarkCreateDelete_1000Nodes(b *testing.B) {
	s := newTestContext().NewScene(SceneParams{MaxNodes: 1000})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 1000; j++ {
			_, _ = s.NewBoxNode(mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
		}
		s.ClearNodes()
		_ = s.Update(0)
	}
}
