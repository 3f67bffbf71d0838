package gui

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Context and scene lifecycle ---

func TestNewContextDefaults(t *testing.T) {
	c := NewContext(ContextParams{})
	w, h := c.Resolution()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Resolution = (%d, %d), want (%d, %d)", w, h, DefaultWidth, DefaultHeight)
	}
	pw, ph := c.PhysicalResolution()
	if pw != w || ph != h {
		t.Errorf("PhysicalResolution = (%d, %d), want design size", pw, ph)
	}
	if c.ReferenceScale() != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Errorf("ReferenceScale = %v, want ones", c.ReferenceScale())
	}
}

func TestSceneRegistration(t *testing.T) {
	c := newTestContext()
	a := c.NewScene(SceneParams{UserData: "a"})
	b := c.NewScene(SceneParams{})
	if len(c.Scenes()) != 2 {
		t.Fatalf("Scenes = %d, want 2", len(c.Scenes()))
	}
	if a.UserData() != "a" || a.Context() != c {
		t.Error("scene should keep its user data and context")
	}

	a.Delete()
	if len(c.Scenes()) != 1 || c.Scenes()[0] != b {
		t.Errorf("Scenes after Delete = %v, want [b]", c.Scenes())
	}
	if err := a.Update(0.1); !errors.Is(err, ErrSceneDeleted) {
		t.Errorf("Update after Delete = %v, want ErrSceneDeleted", err)
	}
	if err := a.Render(nil, nil); !errors.Is(err, ErrSceneDeleted) {
		t.Errorf("Render after Delete = %v, want ErrSceneDeleted", err)
	}
	if _, err := a.NewBoxNode(mgl32.Vec3{}, mgl32.Vec3{}); !errors.Is(err, ErrSceneDeleted) {
		t.Errorf("NewBoxNode after Delete = %v, want ErrSceneDeleted", err)
	}
	a.Delete() // second call is a no-op

	c.Delete()
	if len(c.Scenes()) != 0 {
		t.Errorf("Scenes after Context.Delete = %d, want 0", len(c.Scenes()))
	}
}

func TestQueriesAfterSceneDelete(t *testing.T) {
	s := newTestScene(t)
	h := mustBox(t, s, mgl32.Vec3{50, 50, 0}, mgl32.Vec3{10, 10, 0})
	if err := s.SetNodeID(h, "a"); err != nil {
		t.Fatal(err)
	}
	_ = s.Render(noopRender, nil)

	s.Delete()
	if got, ok := s.GetNodeByID("a"); ok {
		t.Errorf("GetNodeByID after Delete = %v, want not found", got)
	}
	if got, ok := s.NodeAt(50, 50); ok {
		t.Errorf("NodeAt after Delete = %v, want not found", got)
	}
	if _, err := s.GetNodePosition(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("GetNodePosition after Delete = %v, want ErrInvalidHandle", err)
	}
}

func TestSceneOwnerCallbacks(t *testing.T) {
	c := NewContext(ContextParams{
		ResolvePath: func(s *Scene, path string) uint64 { return uint64(len(path)) },
		GetURL:      func(s *Scene) string { return "main:/gui" },
		GetUserData: func(s *Scene) any { return 42 },
	})
	s := c.NewScene(SceneParams{})
	if s.ResolvePath("abc") != 3 {
		t.Errorf("ResolvePath = %d, want 3", s.ResolvePath("abc"))
	}
	if s.URL() != "main:/gui" {
		t.Errorf("URL = %q", s.URL())
	}
	if s.OwnerUserData() != 42 {
		t.Errorf("OwnerUserData = %v", s.OwnerUserData())
	}

	plain := newTestScene(t)
	if plain.ResolvePath("abc") != HashString("abc") {
		t.Error("ResolvePath without callback should use HashString")
	}
	if plain.URL() != "" || plain.OwnerUserData() != nil {
		t.Error("owner helpers without callbacks should return zero values")
	}
}

// --- Arena ---

func TestNodePoolExhaustion(t *testing.T) {
	s := newTestContext().NewScene(SceneParams{MaxNodes: 2})
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	if _, err := s.NewBoxNode(mgl32.Vec3{}, mgl32.Vec3{}); !errors.Is(err, ErrOutOfResources) {
		t.Fatalf("third node err = %v, want ErrOutOfResources", err)
	}

	s.DeleteNode(a)
	// The slot is not reusable until the collection point.
	if _, err := s.NewBoxNode(mgl32.Vec3{}, mgl32.Vec3{}); !errors.Is(err, ErrOutOfResources) {
		t.Fatalf("before Update err = %v, want ErrOutOfResources", err)
	}
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NewBoxNode(mgl32.Vec3{}, mgl32.Vec3{}); err != nil {
		t.Fatalf("after Update err = %v", err)
	}
}

func TestDeletedHandleLifecycle(t *testing.T) {
	s := newTestScene(t)
	h := mustBox(t, s, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{})

	s.DeleteNode(h)
	deleted, err := s.IsNodeDeleted(h)
	if err != nil || !deleted {
		t.Fatalf("IsNodeDeleted = (%v, %v), want (true, nil)", deleted, err)
	}
	// Reads still work until collection, writes do not.
	if pos, err := s.GetNodePosition(h); err != nil || pos != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("GetNodePosition = (%v, %v)", pos, err)
	}
	if err := s.SetNodePosition(h, mgl32.Vec3{}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("SetNodePosition on deleted node = %v, want ErrInvalidHandle", err)
	}
	if s.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", s.NodeCount())
	}

	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.IsNodeDeleted(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("IsNodeDeleted after Update = %v, want ErrInvalidHandle", err)
	}

	// The reused slot gets a new handle; the old one stays stale.
	h2 := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	if h2 == h {
		t.Fatal("reused slot should get a different handle")
	}
	if h2.index() != h.index() {
		t.Errorf("index = %d, want reused %d", h2.index(), h.index())
	}
	if _, err := s.GetNodePosition(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("old handle err = %v, want ErrInvalidHandle", err)
	}
	s.DeleteNode(h) // stale handles are ignored
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", s.NodeCount())
	}
}

func TestZeroHandleInvalid(t *testing.T) {
	s := newTestScene(t)
	if _, err := s.GetNodePosition(0); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("err = %v, want ErrInvalidHandle", err)
	}
}

// --- Hierarchy ---

func TestGetNodeIndex(t *testing.T) {
	s := newTestScene(t)
	n1 := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	n2 := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})

	checkIndex := func(step string, want1, want2 int) {
		t.Helper()
		i1, _ := s.GetNodeIndex(n1)
		i2, _ := s.GetNodeIndex(n2)
		if i1 != want1 || i2 != want2 {
			t.Errorf("%s: indices = (%d, %d), want (%d, %d)", step, i1, i2, want1, want2)
		}
	}
	checkIndex("created", 0, 1)

	if err := s.MoveNodeAbove(n1, 0); err != nil {
		t.Fatal(err)
	}
	checkIndex("move above nil", 1, 0)

	if err := s.SetNodeParent(n1, n2); err != nil {
		t.Fatal(err)
	}
	checkIndex("parented", 0, 0)

	if err := s.SetNodeParent(n1, 0); err != nil {
		t.Fatal(err)
	}
	checkIndex("unparented", 1, 0)
}

func TestMoveNodeAboveBelow(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	c := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})

	if err := s.MoveNodeBelow(c, a); err != nil {
		t.Fatal(err)
	}
	assertSiblings(t, s, 0, c, a, b)

	if err := s.MoveNodeAbove(c, b); err != nil {
		t.Fatal(err)
	}
	assertSiblings(t, s, 0, a, b, c)

	if err := s.MoveNodeBelow(b, 0); err != nil {
		t.Fatal(err)
	}
	assertSiblings(t, s, 0, b, a, c)

	child := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	if err := s.SetNodeParent(child, a); err != nil {
		t.Fatal(err)
	}
	if err := s.MoveNodeAbove(child, b); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("move relative to non-sibling = %v, want ErrInvalidOperation", err)
	}
}

func assertSiblings(t *testing.T, s *Scene, parent HNode, want ...HNode) {
	t.Helper()
	var got []HNode
	h, err := s.FirstChildNode(parent)
	for ; err == nil && h != 0; h, err = s.NextNode(h) {
		got = append(got, h)
	}
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("siblings = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("siblings = %v, want %v", got, want)
		}
	}
}

func TestSetNodeParentRejectsCycles(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	c := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	_ = s.SetNodeParent(b, a)
	_ = s.SetNodeParent(c, b)

	if err := s.SetNodeParent(a, c); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("parent under descendant = %v, want ErrInvalidOperation", err)
	}
	if err := s.SetNodeParent(a, a); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("parent under self = %v, want ErrInvalidOperation", err)
	}

	// Nothing moved.
	assertSiblings(t, s, 0, a)
	assertSiblings(t, s, a, b)
	assertSiblings(t, s, b, c)
	if p, _ := s.GetNodeParent(a); p != 0 {
		t.Errorf("parent of a = %v, want 0", p)
	}
}

func TestSetNodeParentSameParentKeepsOrder(t *testing.T) {
	s := newTestScene(t)
	p := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	_ = s.SetNodeParent(a, p)
	_ = s.SetNodeParent(b, p)
	if err := s.SetNodeParent(a, p); err != nil {
		t.Fatal(err)
	}
	assertSiblings(t, s, p, a, b)
}

func TestDeleteNodeRemovesSubtree(t *testing.T) {
	s := newTestScene(t)
	rec := &eventRecorder{}
	s.SetEventStore(rec)

	root := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	child := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	grandchild := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	other := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	_ = s.SetNodeParent(child, root)
	_ = s.SetNodeParent(grandchild, child)

	s.DeleteNode(root)
	for _, h := range []HNode{root, child, grandchild} {
		if d, _ := s.IsNodeDeleted(h); !d {
			t.Errorf("node %v should be deleted", h)
		}
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", s.NodeCount())
	}
	assertSiblings(t, s, 0, other)
	if rec.count(EventNodeDeleted) != 3 {
		t.Errorf("delete events = %d, want 3", rec.count(EventNodeDeleted))
	}

	s.DeleteNode(root) // already deleted
	if rec.count(EventNodeDeleted) != 3 {
		t.Error("deleting twice should not emit again")
	}
}

func TestClearNodes(t *testing.T) {
	s := newTestScene(t)
	a := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	b := mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})
	_ = s.SetNodeParent(b, a)
	mustBox(t, s, mgl32.Vec3{}, mgl32.Vec3{})

	s.ClearNodes()
	if s.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", s.NodeCount())
	}
	if h, _ := s.FirstChildNode(0); h != 0 {
		t.Error("top-level list should be empty")
	}
	_ = s.Update(0)
	if s.nodes.live != 0 {
		t.Errorf("live slots after collection = %d, want 0", s.nodes.live)
	}
}

func TestResolutionChangeMarksDirty(t *testing.T) {
	c := NewContext(ContextParams{Width: 100, Height: 100})
	s := c.NewScene(SceneParams{})
	h := mustBox(t, s, mgl32.Vec3{10, 10, 0}, mgl32.Vec3{})
	_ = s.SetNodeXAnchor(h, XAnchorRight)

	pos, _ := s.GetNodeScreenPosition(h)
	assertNear(t, "x before", pos[0], 10)

	c.SetPhysicalResolution(200, 100)
	pos, _ = s.GetNodeScreenPosition(h)
	assertNear(t, "x after", pos[0], 110)
}
