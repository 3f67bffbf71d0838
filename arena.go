package gui

import "github.com/go-gl/mathgl/mgl32"

// HNode is an opaque node handle encoding a slot index and the slot version
// it was issued for. The zero value means "no node".
type HNode uint32

// invalidIndex marks an absent link in the hierarchy.
const invalidIndex uint16 = 0xffff

// maxNodes is the largest pool the 16-bit index space supports.
const maxNodes = int(invalidIndex)

func makeHandle(index, version uint16) HNode {
	return HNode(uint32(version)<<16 | uint32(index))
}

func (h HNode) index() uint16   { return uint16(h) }
func (h HNode) version() uint16 { return uint16(h >> 16) }

// node is the visual content of an arena slot.
type node struct {
	properties           [PropertyCount]mgl32.Vec4
	resetPointProperties [PropertyCount]mgl32.Vec4
	resetPointState      uint32
	hasResetPoint        bool

	// localTransform is valid only while state.DirtyLocal is false.
	localTransform mgl32.Mat4
	state          NodeState

	text        string
	textureHash uint64
	texture     any
	fontHash    uint64
	font        any
	layerHash   uint64
	layerIndex  uint16
}

// slot is one arena entry: a node plus its identity and hierarchy links.
type slot struct {
	node        node
	nameHash    uint64
	version     uint16
	index       uint16
	prevIndex   uint16
	nextIndex   uint16
	parentIndex uint16
	childHead   uint16
	childTail   uint16
	renderKey   uint32
	deleted     bool
	used        bool
}

// arena is a fixed-capacity pool of node slots. Indices come from a free
// stack; versions change only when a slot is reclaimed.
type arena struct {
	slots   []slot
	free    []uint16
	pending []uint16 // deleted slots waiting for the collection point
	live    int
}

func newArena(capacity int) arena {
	a := arena{
		slots: make([]slot, capacity),
		free:  make([]uint16, capacity),
	}
	for i := range a.slots {
		a.slots[i].version = 1
		// Pop order hands out low indices first.
		a.free[i] = uint16(capacity - 1 - i)
	}
	return a
}

// alloc takes a free slot, or returns false when the pool is exhausted.
func (a *arena) alloc() (*slot, bool) {
	if len(a.free) == 0 {
		return nil, false
	}
	idx := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	s := &a.slots[idx]
	version := s.version
	*s = slot{
		version:     version,
		index:       idx,
		prevIndex:   invalidIndex,
		nextIndex:   invalidIndex,
		parentIndex: invalidIndex,
		childHead:   invalidIndex,
		childTail:   invalidIndex,
		used:        true,
	}
	a.live++
	return s, true
}

// get resolves a handle. Deleted slots still resolve until collected.
func (a *arena) get(h HNode) *slot {
	if h == 0 {
		return nil
	}
	idx := h.index()
	if int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.used || s.version != h.version() {
		return nil
	}
	return s
}

// at returns the slot for a link index, or nil for invalidIndex.
func (a *arena) at(idx uint16) *slot {
	if idx == invalidIndex {
		return nil
	}
	return &a.slots[idx]
}

// markDeleted queues a slot for reclamation.
func (a *arena) markDeleted(s *slot) {
	if s.deleted {
		return
	}
	s.deleted = true
	a.pending = append(a.pending, s.index)
}

// collect reclaims every pending slot, bumping its version so handles issued
// for it stop resolving. Returns the number of slots reclaimed.
func (a *arena) collect() int {
	n := len(a.pending)
	for _, idx := range a.pending {
		s := &a.slots[idx]
		version := s.version + 1
		if version == 0 {
			version = 1
		}
		*s = slot{version: version}
		a.free = append(a.free, idx)
		a.live--
	}
	a.pending = a.pending[:0]
	return n
}

func (s *slot) handle() HNode {
	return makeHandle(s.index, s.version)
}
