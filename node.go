package gui

import "github.com/go-gl/mathgl/mgl32"

// --- Creation ---

// NewNode creates a node of the given type at the end of the top-level list.
// Fails with ErrOutOfResources when the scene's node pool is full.
func (s *Scene) NewNode(position, size mgl32.Vec3, typ NodeType) (HNode, error) {
	if s.deleted {
		return 0, ErrSceneDeleted
	}
	n, ok := s.nodes.alloc()
	if !ok {
		return 0, ErrOutOfResources
	}
	nodeDefaults(&n.node, typ)
	n.node.properties[PropertyPosition] = position.Vec4(1)
	n.node.properties[PropertySize] = size.Vec4(0)
	s.linkLast(n, invalidIndex)
	s.nodeCount++
	return n.handle(), nil
}

// nodeDefaults sets the common default values shared by all constructors.
func nodeDefaults(nd *node, typ NodeType) {
	nd.properties[PropertyScale] = mgl32.Vec4{1, 1, 1, 1}
	nd.properties[PropertyColor] = ColorWhite
	nd.properties[PropertyOutline] = mgl32.Vec4{0, 0, 0, 1}
	nd.properties[PropertyShadow] = mgl32.Vec4{0, 0, 0, 1}
	nd.state = NodeState{
		Type:       typ,
		Pivot:      PivotCenter,
		AdjustMode: AdjustFit,
		BlendMode:  BlendAlpha,
		Enabled:    true,
		DirtyLocal: true,
	}
	nd.localTransform = mgl32.Ident4()
}

// NewBoxNode creates a box node.
func (s *Scene) NewBoxNode(position, size mgl32.Vec3) (HNode, error) {
	return s.NewNode(position, size, NodeTypeBox)
}

// NewTextNode creates a text node with zero size.
func (s *Scene) NewTextNode(position mgl32.Vec3, text string) (HNode, error) {
	h, err := s.NewNode(position, mgl32.Vec3{}, NodeTypeText)
	if err != nil {
		return 0, err
	}
	s.nodes.get(h).node.text = text
	return h, nil
}

// NewPieNode creates a pie node.
func (s *Scene) NewPieNode(position, size mgl32.Vec3) (HNode, error) {
	h, err := s.NewNode(position, size, NodeTypePie)
	if err != nil {
		return 0, err
	}
	s.nodes.get(h).node.properties[PropertyPieParams] = mgl32.Vec4{0, 360, 0, 0}
	return h, nil
}

// --- Identity ---

// SetNodeID names a node so it can be found with GetNodeByID. An empty id
// clears the name.
func (s *Scene) SetNodeID(h HNode, id string) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	if n.nameHash != 0 && s.idIndex[n.nameHash] == n.index {
		delete(s.idIndex, n.nameHash)
	}
	n.nameHash = HashString(id)
	if n.nameHash != 0 {
		s.idIndex[n.nameHash] = n.index
	}
	return nil
}

// GetNodeID returns the hash of the node's id, or 0 when unnamed.
func (s *Scene) GetNodeID(h HNode) (uint64, error) {
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return n.nameHash, nil
}

// GetNodeByID looks up a node by the id given to SetNodeID.
func (s *Scene) GetNodeByID(id string) (HNode, bool) {
	if s.deleted {
		return 0, false
	}
	idx, ok := s.idIndex[HashString(id)]
	if !ok || int(idx) >= len(s.nodes.slots) {
		return 0, false
	}
	n := &s.nodes.slots[idx]
	if n.deleted {
		return 0, false
	}
	return n.handle(), true
}

// --- Properties ---

// GetNodeProperty returns the current value of a property.
func (s *Scene) GetNodeProperty(h HNode, p Property) (mgl32.Vec4, error) {
	n, err := s.lookup(h)
	if err != nil {
		return mgl32.Vec4{}, err
	}
	if int(p) >= PropertyCount {
		return mgl32.Vec4{}, ErrInvalidOperation
	}
	return n.node.properties[p], nil
}

// SetNodeProperty writes a property. Position, rotation, scale and size
// invalidate the node's cached local transform.
func (s *Scene) SetNodeProperty(h HNode, p Property, v mgl32.Vec4) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	if int(p) >= PropertyCount {
		return ErrInvalidOperation
	}
	n.node.properties[p] = v
	if p.affectsTransform() {
		n.node.state.DirtyLocal = true
	}
	return nil
}

// SetNodePosition sets the node's position.
func (s *Scene) SetNodePosition(h HNode, pos mgl32.Vec3) error {
	return s.SetNodeProperty(h, PropertyPosition, pos.Vec4(1))
}

// GetNodePosition returns the node's position.
func (s *Scene) GetNodePosition(h HNode) (mgl32.Vec3, error) {
	v, err := s.GetNodeProperty(h, PropertyPosition)
	return v.Vec3(), err
}

// SetNodeSize sets the node's size.
func (s *Scene) SetNodeSize(h HNode, size mgl32.Vec3) error {
	return s.SetNodeProperty(h, PropertySize, size.Vec4(0))
}

// SetNodeScale sets the node's scale.
func (s *Scene) SetNodeScale(h HNode, scale mgl32.Vec3) error {
	return s.SetNodeProperty(h, PropertyScale, scale.Vec4(1))
}

// SetNodeRotation sets the node's Euler rotation in degrees.
func (s *Scene) SetNodeRotation(h HNode, degrees mgl32.Vec3) error {
	return s.SetNodeProperty(h, PropertyRotation, degrees.Vec4(0))
}

// SetNodeColor sets the node's RGBA tint.
func (s *Scene) SetNodeColor(h HNode, c mgl32.Vec4) error {
	return s.SetNodeProperty(h, PropertyColor, c)
}

// --- Text ---

// SetNodeText sets the text of a node. The node owns a copy.
func (s *Scene) SetNodeText(h HNode, text string) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	n.node.text = text
	return nil
}

// GetNodeText returns the node's text.
func (s *Scene) GetNodeText(h HNode) (string, error) {
	n, err := s.lookup(h)
	if err != nil {
		return "", err
	}
	return n.node.text, nil
}

// SetNodeLineBreak enables wrapping text at the node's width.
func (s *Scene) SetNodeLineBreak(h HNode, lineBreak bool) error {
	return s.updateState(h, func(st *NodeState) { st.LineBreak = lineBreak })
}

// GetNodeLineBreak reports whether line breaking is enabled.
func (s *Scene) GetNodeLineBreak(h HNode) (bool, error) {
	st, err := s.GetNodeState(h)
	return st.LineBreak, err
}

// --- State ---

// GetNodeState returns a copy of the node's packed state.
func (s *Scene) GetNodeState(h HNode) (NodeState, error) {
	n, err := s.lookup(h)
	if err != nil {
		return NodeState{}, err
	}
	return n.node.state, nil
}

func (s *Scene) updateState(h HNode, fn func(st *NodeState)) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	fn(&n.node.state)
	return nil
}

// GetNodeType returns the node's type.
func (s *Scene) GetNodeType(h HNode) (NodeType, error) {
	st, err := s.GetNodeState(h)
	return st.Type, err
}

// SetNodePivot sets which point of the node's rectangle sits at its position.
func (s *Scene) SetNodePivot(h HNode, p Pivot) error {
	return s.updateState(h, func(st *NodeState) {
		st.Pivot = p
		st.DirtyLocal = true
	})
}

// SetNodeXAnchor sets the horizontal screen anchor of a top-level node.
func (s *Scene) SetNodeXAnchor(h HNode, a XAnchor) error {
	return s.updateState(h, func(st *NodeState) {
		st.XAnchor = a
		st.DirtyLocal = true
	})
}

// SetNodeYAnchor sets the vertical screen anchor of a top-level node.
func (s *Scene) SetNodeYAnchor(h HNode, a YAnchor) error {
	return s.updateState(h, func(st *NodeState) {
		st.YAnchor = a
		st.DirtyLocal = true
	})
}

// SetNodeAdjustMode sets how the node reacts to the reference scale.
func (s *Scene) SetNodeAdjustMode(h HNode, m AdjustMode) error {
	return s.updateState(h, func(st *NodeState) {
		st.AdjustMode = m
		st.DirtyLocal = true
	})
}

// SetNodeBlendMode sets the node's blend mode.
func (s *Scene) SetNodeBlendMode(h HNode, b BlendMode) error {
	return s.updateState(h, func(st *NodeState) { st.BlendMode = b })
}

// SetNodeEnabled enables or disables a node. Disabled nodes and their
// subtrees are neither animated nor rendered.
func (s *Scene) SetNodeEnabled(h HNode, enabled bool) error {
	return s.updateState(h, func(st *NodeState) { st.Enabled = enabled })
}

// IsNodeEnabled reports whether the node itself is enabled.
func (s *Scene) IsNodeEnabled(h HNode) (bool, error) {
	st, err := s.GetNodeState(h)
	return st.Enabled, err
}

// --- Reset points ---

// SetNodeResetPoint snapshots the node's properties and state.
func (s *Scene) SetNodeResetPoint(h HNode) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	setResetPoint(&n.node)
	return nil
}

// SetResetPoints snapshots every node that has no reset point yet.
func (s *Scene) SetResetPoints() {
	for i := range s.nodes.slots {
		n := &s.nodes.slots[i]
		if n.used && !n.deleted && !n.node.hasResetPoint {
			setResetPoint(&n.node)
		}
	}
}

func setResetPoint(nd *node) {
	nd.resetPointProperties = nd.properties
	nd.resetPointState = nd.state.Pack()
	nd.hasResetPoint = true
}

// ResetNode restores the node to its reset point. Nodes without one are
// left unchanged.
func (s *Scene) ResetNode(h HNode) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	resetNode(&n.node)
	return nil
}

// ResetNodes restores every node that has a reset point.
func (s *Scene) ResetNodes() {
	for i := range s.nodes.slots {
		n := &s.nodes.slots[i]
		if n.used && !n.deleted {
			resetNode(&n.node)
		}
	}
}

func resetNode(nd *node) {
	if !nd.hasResetPoint {
		return
	}
	nd.properties = nd.resetPointProperties
	nd.state = UnpackNodeState(nd.resetPointState)
	nd.state.DirtyLocal = true
}

// --- Cloning ---

// CloneNode copies a single node: properties, state, text, resource names
// and reset point. The clone has no id and is appended after the source's
// last sibling under the same parent.
func (s *Scene) CloneNode(h HNode) (HNode, error) {
	src, err := s.lookupLive(h)
	if err != nil {
		return 0, err
	}
	dst, ok := s.nodes.alloc()
	if !ok {
		return 0, ErrOutOfResources
	}
	dst.node = src.node
	dst.node.state.DirtyLocal = true
	s.linkLast(dst, src.parentIndex)
	s.nodeCount++
	return dst.handle(), nil
}

// CloneTree deep-copies h and its descendants. The returned map holds, for
// every named node in the subtree, the id hash mapped to its clone. Either
// the whole subtree is cloned or, on ErrOutOfResources, nothing is.
func (s *Scene) CloneTree(h HNode) (HNode, map[uint64]HNode, error) {
	src, err := s.lookupLive(h)
	if err != nil {
		return 0, nil, err
	}
	if s.subtreeSize(src) > len(s.nodes.free) {
		return 0, nil, ErrOutOfResources
	}
	ids := make(map[uint64]HNode)
	root := s.cloneSubtree(src, src.parentIndex, ids)
	return root.handle(), ids, nil
}

func (s *Scene) subtreeSize(n *slot) int {
	count := 1
	for c := s.nodes.at(n.childHead); c != nil; c = s.nodes.at(c.nextIndex) {
		count += s.subtreeSize(c)
	}
	return count
}

func (s *Scene) cloneSubtree(src *slot, parentIndex uint16, ids map[uint64]HNode) *slot {
	dst, _ := s.nodes.alloc()
	dst.node = src.node
	dst.node.state.DirtyLocal = true
	s.linkLast(dst, parentIndex)
	s.nodeCount++
	if src.nameHash != 0 {
		ids[src.nameHash] = dst.handle()
	}
	for c := s.nodes.at(src.childHead); c != nil; c = s.nodes.at(c.nextIndex) {
		s.cloneSubtree(c, dst.index, ids)
	}
	return dst
}
