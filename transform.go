package gui

import "github.com/go-gl/mathgl/mgl32"

// pivotDelta returns the offset, in units of the node's size, from the
// pivot point to the bottom-left corner of the node's rectangle.
func pivotDelta(p Pivot) (dx, dy float32) {
	switch p {
	case PivotN:
		return -0.5, -1
	case PivotNE:
		return -1, -1
	case PivotE:
		return -1, -0.5
	case PivotSE:
		return -1, 0
	case PivotS:
		return -0.5, 0
	case PivotSW:
		return 0, 0
	case PivotW:
		return 0, -0.5
	case PivotNW:
		return 0, -1
	default:
		return -0.5, -0.5
	}
}

// adjustScale resolves the node's adjust mode against the reference scale.
func adjustScale(mode AdjustMode, ref mgl32.Vec4) mgl32.Vec4 {
	switch mode {
	case AdjustStretch:
		return mgl32.Vec4{ref[0], ref[1], 1, 1}
	case AdjustZoom:
		u := max(ref[0], ref[1])
		return mgl32.Vec4{u, u, 1, 1}
	default:
		u := min(ref[0], ref[1])
		return mgl32.Vec4{u, u, 1, 1}
	}
}

// anchoredPosition places a top-level node in physical screen space.
// Anchored axes keep their design-space distance to the anchored edge;
// unanchored axes keep the scaled design area centered on the display.
func (s *Scene) anchoredPosition(nd *node, adjust mgl32.Vec4) mgl32.Vec3 {
	pos := nd.properties[PropertyPosition]
	physW := float32(s.context.physicalWidth)
	physH := float32(s.context.physicalHeight)
	designW := float32(s.width)
	designH := float32(s.height)

	var x, y float32
	switch nd.state.XAnchor {
	case XAnchorLeft:
		x = pos[0] * adjust[0]
	case XAnchorRight:
		x = physW - (designW-pos[0])*adjust[0]
	default:
		x = pos[0]*adjust[0] + (physW-designW*adjust[0])*0.5
	}
	switch nd.state.YAnchor {
	case YAnchorBottom:
		y = pos[1] * adjust[1]
	case YAnchorTop:
		y = physH - (designH-pos[1])*adjust[1]
	default:
		y = pos[1]*adjust[1] + (physH-designH*adjust[1])*0.5
	}
	return mgl32.Vec3{x, y, pos[2]}
}

// nodeTransform returns T(position) * R(rotation) * S(scale), the transform
// a node passes on to its children. Top-level nodes additionally apply
// anchoring and their adjust scale. The result is cached until DirtyLocal
// is set again.
func (s *Scene) nodeTransform(n *slot, ref mgl32.Vec4) mgl32.Mat4 {
	nd := &n.node
	if !nd.state.DirtyLocal {
		return nd.localTransform
	}
	scale := nd.properties[PropertyScale]
	var pos mgl32.Vec3
	if n.parentIndex == invalidIndex {
		adjust := adjustScale(nd.state.AdjustMode, ref)
		pos = s.anchoredPosition(nd, adjust)
		scale = mgl32.Vec4{scale[0] * adjust[0], scale[1] * adjust[1], scale[2] * adjust[2], scale[3]}
	} else {
		pos = nd.properties[PropertyPosition].Vec3()
	}
	rot := nd.properties[PropertyRotation]

	m := mgl32.Translate3D(pos[0], pos[1], pos[2])
	if rot[2] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rot[2])))
	}
	if rot[1] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rot[1])))
	}
	if rot[0] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rot[0])))
	}
	m = m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))

	nd.localTransform = m
	nd.state.DirtyLocal = false
	return m
}

// calculateNodeTransform computes the local transform of a node.
//
// A boundary transform maps the unit rectangle (0,1)x(0,1) onto the node's
// extent. Box and pie nodes are drawn in that space, so their render and
// boundary transforms are the same. Text is drawn from the left edge of its
// first baseline without size scaling, since glyph quads carry their own
// size. Both text transforms resolve the pivot against the Size property;
// the boundary then spans the measured text from that origin, from the
// lowest descender up to the ascent.
//
// includeSize adds the size scaling term. resetPivot ignores the node's
// pivot so the origin sits at the node's position.
func (s *Scene) calculateNodeTransform(n *slot, ref mgl32.Vec4, boundary, includeSize, resetPivot bool) mgl32.Mat4 {
	m := s.nodeTransform(n, ref)
	nd := &n.node

	size := nd.properties[PropertySize]
	w, h := size[0], size[1]
	var dx, dy float32
	if !resetPivot {
		dx, dy = pivotDelta(nd.state.Pivot)
	}

	if nd.state.Type == NodeTypeText {
		if dx != 0 || dy != 0 {
			m = m.Mul4(mgl32.Translate3D(dx*w, dy*h, 0))
		}
		if boundary && includeSize {
			metrics := s.nodeTextMetrics(nd)
			m = m.Mul4(mgl32.Translate3D(0, -metrics.MaxDescent, 0))
			m = m.Mul4(mgl32.Scale3D(metrics.Width, metrics.MaxAscent+metrics.MaxDescent, 1))
		}
		return m
	}

	if includeSize {
		m = m.Mul4(mgl32.Scale3D(w, h, 1))
		if dx != 0 || dy != 0 {
			m = m.Mul4(mgl32.Translate3D(dx, dy, 0))
		}
	} else if dx != 0 || dy != 0 {
		m = m.Mul4(mgl32.Translate3D(dx*w, dy*h, 0))
	}
	return m
}

// parentTransform returns the product of the node transforms of every
// ancestor of n, computed from the top of the hierarchy down.
func (s *Scene) parentTransform(n *slot, ref mgl32.Vec4) mgl32.Mat4 {
	chain := s.ancestors[:0]
	for p := s.nodes.at(n.parentIndex); p != nil; p = s.nodes.at(p.parentIndex) {
		chain = append(chain, p.index)
	}
	m := mgl32.Ident4()
	for i := len(chain) - 1; i >= 0; i-- {
		m = m.Mul4(s.nodeTransform(&s.nodes.slots[chain[i]], ref))
	}
	s.ancestors = chain
	return m
}

// worldTransform computes the full transform of n in screen space.
func (s *Scene) worldTransform(n *slot, boundary, includeSize, resetPivot bool) mgl32.Mat4 {
	s.refreshResolution()
	ref := s.ReferenceScale()
	parent := s.parentTransform(n, ref)
	return parent.Mul4(s.calculateNodeTransform(n, ref, boundary, includeSize, resetPivot))
}

func (s *Scene) refreshResolution() {
	if s.resChanged {
		s.markAllDirty()
		s.resChanged = false
	}
}

// nodeTextMetrics measures the node's text with its font, or the scene's
// default font when the node has none.
func (s *Scene) nodeTextMetrics(nd *node) TextMetrics {
	fn := s.context.params.TextMetrics
	if fn == nil {
		return TextMetrics{}
	}
	font := nd.font
	if font == nil {
		font = s.DefaultFont()
	}
	return fn(font, nd.text, nd.properties[PropertySize][0], nd.state.LineBreak)
}

// --- Queries ---

// GetNodeWorldTransform returns the node's screen-space transform: the
// boundary transform when boundary is set, the render transform otherwise.
func (s *Scene) GetNodeWorldTransform(h HNode, boundary bool) (mgl32.Mat4, error) {
	n, err := s.lookupLive(h)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return s.worldTransform(n, boundary, true, false), nil
}

// GetNodeScreenPosition returns the screen-space position of the node's
// pivot point, independent of its size and pivot.
func (s *Scene) GetNodeScreenPosition(h HNode) (mgl32.Vec3, error) {
	n, err := s.lookupLive(h)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	m := s.worldTransform(n, true, false, true)
	return m.Col(3).Vec3(), nil
}

// PickNode reports whether the screen point (x, y) lies inside the node's
// boundary. Points on the edge are considered inside.
func (s *Scene) PickNode(h HNode, x, y float32) (bool, error) {
	n, err := s.lookupLive(h)
	if err != nil {
		return false, err
	}
	m := s.worldTransform(n, true, true, false)
	if m.Det() == 0 {
		return false, nil
	}
	p := m.Inv().Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return p[0] >= 0 && p[0] <= 1 && p[1] >= 0 && p[1] <= 1, nil
}

// NodeAt returns the topmost node drawn by the last Render whose boundary
// contains the screen point (x, y). Nodes deleted since then, or now under a
// disabled node, are skipped.
func (s *Scene) NodeAt(x, y float32) (HNode, bool) {
	for i := len(s.renderNodes) - 1; i >= 0; i-- {
		h := s.renderNodes[i]
		n, err := s.lookupLive(h)
		if err != nil || !s.enabledInTree(n) {
			continue
		}
		if hit, _ := s.PickNode(h, x, y); hit {
			return h, true
		}
	}
	return 0, false
}
