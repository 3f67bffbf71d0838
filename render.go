package gui

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderNodesFunc receives the draw list of one Render call: node handles and
// their render transforms, parallel and sorted back to front. Both slices
// are reused by the scene and only valid during the call.
type RenderNodesFunc func(scene *Scene, nodes []HNode, transforms []mgl32.Mat4, userCtx any)

// renderEntry is a single draw emitted during traversal.
type renderEntry struct {
	index     uint16
	layer     uint16
	renderKey uint32 // assigned during traversal for stable sort
	transform mgl32.Mat4
}

// Render walks the hierarchy, computes render transforms top-down, orders
// the enabled nodes by (layer, tree order) and hands the result to fn.
// Disabled nodes are skipped together with their subtrees.
func (s *Scene) Render(fn RenderNodesFunc, userCtx any) error {
	if s.deleted {
		return ErrSceneDeleted
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.refreshResolution()
	s.processDynamicTextures()

	s.renderEntries = s.renderEntries[:0]
	ref := s.ReferenceScale()
	identity := mgl32.Ident4()
	var renderKey uint32
	for n := s.nodes.at(s.renderHead); n != nil; n = s.nodes.at(n.nextIndex) {
		s.traverse(n, identity, ref, &renderKey)
	}

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.renderCount = len(s.renderEntries)
		t0 = time.Now()
	}

	s.renderNodes = s.renderNodes[:0]
	s.renderMats = s.renderMats[:0]
	for i := range s.renderEntries {
		e := &s.renderEntries[i]
		s.renderNodes = append(s.renderNodes, s.nodes.slots[e.index].handle())
		s.renderMats = append(s.renderMats, e.transform)
	}
	if fn != nil {
		fn(s, s.renderNodes, s.renderMats, userCtx)
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLogRender(stats)
	}
	return nil
}

// traverse walks n's subtree depth-first, assigning render keys in tree
// order (parent before children, earlier siblings first) and emitting one
// entry per drawable node.
func (s *Scene) traverse(n *slot, parent mgl32.Mat4, ref mgl32.Vec4, renderKey *uint32) {
	if !n.node.state.Enabled {
		return
	}
	s.resolveNodeResources(n)

	*renderKey++
	n.renderKey = *renderKey
	if n.node.state.Type != NodeTypeTemplate {
		local := s.calculateNodeTransform(n, ref, false, true, false)
		s.renderEntries = append(s.renderEntries, renderEntry{
			index:     n.index,
			layer:     n.node.layerIndex,
			renderKey: n.renderKey,
			transform: parent.Mul4(local),
		})
	}

	if n.childHead == invalidIndex {
		return
	}
	world := parent.Mul4(s.nodeTransform(n, ref))
	for c := s.nodes.at(n.childHead); c != nil; c = s.nodes.at(c.nextIndex) {
		s.traverse(c, world, ref, renderKey)
	}
}

// --- Merge sort ---

// entryLessOrEqual returns true if a should sort before or at the same
// position as b. Using <= for renderKey keeps the sort stable.
func entryLessOrEqual(a, b *renderEntry) bool {
	if a.layer != b.layer {
		return a.layer < b.layer
	}
	return a.renderKey <= b.renderKey
}

// mergeSort sorts s.renderEntries in place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches its
// high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.renderEntries)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]renderEntry, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.renderEntries
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.renderEntries, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []renderEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if entryLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
