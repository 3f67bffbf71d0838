package gui

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// renderOrder returns the handles emitted by one Render call.
func renderOrder(t *testing.T, s *Scene) []HNode {
	t.Helper()
	var out []HNode
	err := s.Render(func(_ *Scene, nodes []HNode, transforms []mgl32.Mat4, _ any) {
		if len(nodes) != len(transforms) {
			t.Fatalf("nodes/transforms length mismatch: %d vs %d", len(nodes), len(transforms))
		}
		out = append(out, nodes...)
	}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func assertOrder(t *testing.T, got []HNode, want ...HNode) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("rendered %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("render[%d] = %v, want %v (got %v)", i, got[i], want[i], got)
		}
	}
}

func TestRenderTreeOrder(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	c := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	_ = s.SetNodeParent(c, a)

	assertOrder(t, renderOrder(t, s), a, c, b)

	_ = s.MoveNodeAbove(a, b)
	assertOrder(t, renderOrder(t, s), b, a, c)
}

func TestRenderLayerOrder(t *testing.T) {
	s := newTestScene(t)
	s.AddLayer("back")
	s.AddLayer("front")
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	c := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	if err := s.SetNodeLayer(a, "front"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetNodeLayer(b, "back"); err != nil {
		t.Fatal(err)
	}

	// c has no layer and shares layer 0 with b; tree order breaks the tie.
	assertOrder(t, renderOrder(t, s), b, c, a)
}

func TestRenderLayerOverridesHierarchy(t *testing.T) {
	s := newTestScene(t)
	s.AddLayer("low")
	s.AddLayer("high")
	parent := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	child := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	_ = s.SetNodeParent(child, parent)
	_ = s.SetNodeLayer(parent, "high")
	_ = s.SetNodeLayer(child, "low")

	assertOrder(t, renderOrder(t, s), child, parent)
}

func TestRenderStableWithManyEntries(t *testing.T) {
	s := newTestScene(t)
	s.AddLayer("even")
	s.AddLayer("odd")
	var even, odd []HNode
	for i := 0; i < 37; i++ {
		h := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
		if i%2 == 0 {
			_ = s.SetNodeLayer(h, "even")
			even = append(even, h)
		} else {
			_ = s.SetNodeLayer(h, "odd")
			odd = append(odd, h)
		}
	}
	assertOrder(t, renderOrder(t, s), append(even, odd...)...)
}

func TestRenderSkipsDisabledSubtree(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	child := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	_ = s.SetNodeParent(child, a)
	_ = s.SetNodeEnabled(a, false)

	assertOrder(t, renderOrder(t, s), b)

	_ = s.SetNodeEnabled(a, true)
	assertOrder(t, renderOrder(t, s), a, child, b)
}

func TestRenderTemplateNotEmitted(t *testing.T) {
	s := newTestScene(t)
	tmpl, err := s.NewNode(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}, NodeTypeTemplate)
	if err != nil {
		t.Fatal(err)
	}
	child := mustBox(t, s, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{2, 2, 0})
	_ = s.SetNodePivot(child, PivotSW)
	_ = s.SetNodeParent(child, tmpl)

	var m mgl32.Mat4
	err = s.Render(func(_ *Scene, nodes []HNode, transforms []mgl32.Mat4, _ any) {
		assertOrder(t, nodes, child)
		m = transforms[0]
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The template still contributes its transform.
	assertVec3Near(t, "child origin", translation(m), mgl32.Vec3{15, 0, 0})
}

func TestRenderSkipsDeleted(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	child := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	_ = s.SetNodeParent(child, a)

	s.DeleteNode(a)
	// Deletion unlinks immediately; no Update is needed.
	assertOrder(t, renderOrder(t, s), b)
}

func TestRenderChildTransform(t *testing.T) {
	s := newTestScene(t)
	parent := mustBox(t, s, mgl32.Vec3{100, 50, 0}, mgl32.Vec3{40, 40, 0})
	child := mustBox(t, s, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{4, 6, 0})
	_ = s.SetNodePivot(child, PivotSW)
	_ = s.SetNodeParent(child, parent)
	_ = s.SetNodeScale(parent, mgl32.Vec3{2, 2, 1})

	var m mgl32.Mat4
	_ = s.Render(func(_ *Scene, nodes []HNode, transforms []mgl32.Mat4, _ any) {
		m = transforms[1]
	}, nil)
	// The parent's size does not scale its children.
	assertVec3Near(t, "child origin", translation(m), mgl32.Vec3{120, 50, 0})
	assertVec3Near(t, "child x axis", m.Col(0).Vec3(), mgl32.Vec3{8, 0, 0})
	assertVec3Near(t, "child y axis", m.Col(1).Vec3(), mgl32.Vec3{0, 12, 0})
}

func TestRenderUserContext(t *testing.T) {
	s := newTestScene(t)
	mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	var got any
	_ = s.Render(func(scene *Scene, _ []HNode, _ []mgl32.Mat4, userCtx any) {
		if scene != s {
			t.Error("wrong scene passed to render callback")
		}
		got = userCtx
	}, "frame")
	if got != "frame" {
		t.Errorf("userCtx = %v, want frame", got)
	}
}

func TestRenderDeletedScene(t *testing.T) {
	s := newTestScene(t)
	s.Delete()
	if err := s.Render(nil, nil); !errors.Is(err, ErrSceneDeleted) {
		t.Errorf("Render err = %v, want ErrSceneDeleted", err)
	}
}

func TestRenderZeroAlloc(t *testing.T) {
	s := newTestScene(t)
	s.AddLayer("hud")
	for i := 0; i < 32; i++ {
		h := mustBox(t, s, mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{1, 1, 0})
		if i%3 == 0 {
			_ = s.SetNodeLayer(h, "hud")
		}
	}
	count := 0
	fn := func(_ *Scene, nodes []HNode, _ []mgl32.Mat4, _ any) { count = len(nodes) }
	_ = s.Render(fn, nil)

	allocs := testing.AllocsPerRun(100, func() {
		_ = s.Render(fn, nil)
	})
	if allocs != 0 {
		t.Errorf("Render allocs = %v, want 0", allocs)
	}
	if count != 32 {
		t.Errorf("rendered %d nodes, want 32", count)
	}
}
