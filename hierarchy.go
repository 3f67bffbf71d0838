package gui

// --- Sibling list primitives ---

// listEnds returns pointers to the head and tail of the sibling list that
// parentIndex owns (the top-level list for invalidIndex).
func (s *Scene) listEnds(parentIndex uint16) (head, tail *uint16) {
	if parentIndex == invalidIndex {
		return &s.renderHead, &s.renderTail
	}
	p := &s.nodes.slots[parentIndex]
	return &p.childHead, &p.childTail
}

// unlink detaches n from its sibling list. n keeps its parentIndex.
func (s *Scene) unlink(n *slot) {
	head, tail := s.listEnds(n.parentIndex)
	if prev := s.nodes.at(n.prevIndex); prev != nil {
		prev.nextIndex = n.nextIndex
	} else {
		*head = n.nextIndex
	}
	if next := s.nodes.at(n.nextIndex); next != nil {
		next.prevIndex = n.prevIndex
	} else {
		*tail = n.prevIndex
	}
	n.prevIndex = invalidIndex
	n.nextIndex = invalidIndex
}

// linkLast appends n to the end of parentIndex's list.
func (s *Scene) linkLast(n *slot, parentIndex uint16) {
	head, tail := s.listEnds(parentIndex)
	n.parentIndex = parentIndex
	n.prevIndex = *tail
	n.nextIndex = invalidIndex
	if last := s.nodes.at(*tail); last != nil {
		last.nextIndex = n.index
	} else {
		*head = n.index
	}
	*tail = n.index
}

// linkAfter inserts n directly after ref in ref's list.
func (s *Scene) linkAfter(n, ref *slot) {
	_, tail := s.listEnds(ref.parentIndex)
	n.parentIndex = ref.parentIndex
	n.prevIndex = ref.index
	n.nextIndex = ref.nextIndex
	if next := s.nodes.at(ref.nextIndex); next != nil {
		next.prevIndex = n.index
	} else {
		*tail = n.index
	}
	ref.nextIndex = n.index
}

// linkBefore inserts n directly before ref in ref's list.
func (s *Scene) linkBefore(n, ref *slot) {
	head, _ := s.listEnds(ref.parentIndex)
	n.parentIndex = ref.parentIndex
	n.nextIndex = ref.index
	n.prevIndex = ref.prevIndex
	if prev := s.nodes.at(ref.prevIndex); prev != nil {
		prev.nextIndex = n.index
	} else {
		*head = n.index
	}
	ref.prevIndex = n.index
}

// linkFirst prepends n to parentIndex's list.
func (s *Scene) linkFirst(n *slot, parentIndex uint16) {
	head, _ := s.listEnds(parentIndex)
	if first := s.nodes.at(*head); first != nil {
		s.linkBefore(n, first)
		return
	}
	s.linkLast(n, parentIndex)
}

// isAncestor reports whether candidate is n or one of n's ancestors.
func (s *Scene) isAncestor(candidate, n *slot) bool {
	for p := n; p != nil; p = s.nodes.at(p.parentIndex) {
		if p == candidate {
			return true
		}
	}
	return false
}

// markSubtreeDirty sets DirtyLocal on n and all its descendants.
func (s *Scene) markSubtreeDirty(n *slot) {
	n.node.state.DirtyLocal = true
	for c := s.nodes.at(n.childHead); c != nil; c = s.nodes.at(c.nextIndex) {
		s.markSubtreeDirty(c)
	}
}

// --- Public hierarchy API ---

// lookup resolves a handle to a live slot.
func (s *Scene) lookup(h HNode) (*slot, error) {
	n := s.nodes.get(h)
	if n == nil {
		return nil, ErrInvalidHandle
	}
	return n, nil
}

// enabledInTree reports whether n and every ancestor of n are enabled.
func (s *Scene) enabledInTree(n *slot) bool {
	for ; n != nil; n = s.nodes.at(n.parentIndex) {
		if !n.node.state.Enabled {
			return false
		}
	}
	return true
}

// lookupLive resolves a handle to a slot that is not pending deletion.
func (s *Scene) lookupLive(h HNode) (*slot, error) {
	n := s.nodes.get(h)
	if n == nil || n.deleted {
		return nil, ErrInvalidHandle
	}
	return n, nil
}

// SetNodeParent moves child to the end of parent's child list, or to the end
// of the top-level list when parent is 0. Parenting a node under itself or
// one of its descendants fails with ErrInvalidOperation and changes nothing.
func (s *Scene) SetNodeParent(child, parent HNode) error {
	c, err := s.lookupLive(child)
	if err != nil {
		return err
	}
	parentIndex := invalidIndex
	if parent != 0 {
		p, err := s.lookupLive(parent)
		if err != nil {
			return err
		}
		if s.isAncestor(c, p) {
			return ErrInvalidOperation
		}
		parentIndex = p.index
	}
	if c.parentIndex == parentIndex {
		return nil
	}
	s.unlink(c)
	s.linkLast(c, parentIndex)
	s.markSubtreeDirty(c)
	if s.debug {
		s.debugCheckTreeDepth(c)
		s.debugCheckChildCount(parentIndex)
	}
	return nil
}

// GetNodeParent returns the parent of h, or 0 for a top-level node.
func (s *Scene) GetNodeParent(h HNode) (HNode, error) {
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	if p := s.nodes.at(n.parentIndex); p != nil {
		return p.handle(), nil
	}
	return 0, nil
}

// GetNodeIndex returns the position of h within its sibling list.
func (s *Scene) GetNodeIndex(h HNode) (int, error) {
	n, err := s.lookupLive(h)
	if err != nil {
		return 0, err
	}
	i := 0
	for p := s.nodes.at(n.prevIndex); p != nil; p = s.nodes.at(p.prevIndex) {
		i++
	}
	return i, nil
}

// MoveNodeAbove reorders h so it is drawn directly above ref. With ref 0 the
// node moves to the end of its sibling list (drawn on top of its siblings).
func (s *Scene) MoveNodeAbove(h, ref HNode) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	if ref == 0 {
		parentIndex := n.parentIndex
		s.unlink(n)
		s.linkLast(n, parentIndex)
		return nil
	}
	r, err := s.lookupLive(ref)
	if err != nil {
		return err
	}
	if r.parentIndex != n.parentIndex {
		return ErrInvalidOperation
	}
	if r == n {
		return nil
	}
	s.unlink(n)
	s.linkAfter(n, r)
	return nil
}

// MoveNodeBelow reorders h so it is drawn directly below ref. With ref 0 the
// node moves to the front of its sibling list.
func (s *Scene) MoveNodeBelow(h, ref HNode) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	if ref == 0 {
		parentIndex := n.parentIndex
		s.unlink(n)
		s.linkFirst(n, parentIndex)
		return nil
	}
	r, err := s.lookupLive(ref)
	if err != nil {
		return err
	}
	if r.parentIndex != n.parentIndex {
		return ErrInvalidOperation
	}
	if r == n {
		return nil
	}
	s.unlink(n)
	s.linkBefore(n, r)
	return nil
}

// FirstChildNode returns the first child of parent, or the first top-level
// node when parent is 0. Returns 0 when the list is empty.
func (s *Scene) FirstChildNode(parent HNode) (HNode, error) {
	head := s.renderHead
	if parent != 0 {
		p, err := s.lookupLive(parent)
		if err != nil {
			return 0, err
		}
		head = p.childHead
	}
	if n := s.nodes.at(head); n != nil {
		return n.handle(), nil
	}
	return 0, nil
}

// NextNode returns the sibling after h, or 0 at the end of the list.
func (s *Scene) NextNode(h HNode) (HNode, error) {
	n, err := s.lookupLive(h)
	if err != nil {
		return 0, err
	}
	if next := s.nodes.at(n.nextIndex); next != nil {
		return next.handle(), nil
	}
	return 0, nil
}

// NodeCount returns the number of nodes not pending deletion.
func (s *Scene) NodeCount() int {
	return s.nodeCount
}

// --- Deletion ---

// DeleteNode removes h and its descendants from the hierarchy. Their slots
// are reclaimed at the start of the next Update; until then their handles
// still resolve and IsNodeDeleted reports true. Stale handles are ignored.
func (s *Scene) DeleteNode(h HNode) {
	n := s.nodes.get(h)
	if n == nil || n.deleted {
		return
	}
	s.unlink(n)
	s.deleteSubtree(n)
}

func (s *Scene) deleteSubtree(n *slot) {
	for c := s.nodes.at(n.childHead); c != nil; c = s.nodes.at(c.nextIndex) {
		s.deleteSubtree(c)
	}
	s.nodes.markDeleted(n)
	s.nodeCount--
	s.emit(Event{Type: EventNodeDeleted, Node: n.handle()})
}

// ClearNodes deletes every node in the scene.
func (s *Scene) ClearNodes() {
	for n := s.nodes.at(s.renderHead); n != nil; n = s.nodes.at(s.renderHead) {
		s.unlink(n)
		s.deleteSubtree(n)
	}
}

// IsNodeDeleted reports whether h was deleted and is waiting for collection.
// Stale handles report ErrInvalidHandle.
func (s *Scene) IsNodeDeleted(h HNode) (bool, error) {
	n, err := s.lookup(h)
	if err != nil {
		return false, err
	}
	return n.deleted, nil
}
