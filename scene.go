package gui

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Default pool sizes used when SceneParams leaves them at zero.
const (
	DefaultMaxNodes      = 128
	DefaultMaxAnimations = 128
)

// SceneParams configures a new Scene.
type SceneParams struct {
	MaxNodes      int
	MaxAnimations int
	UserData      any
}

// Scene owns a node arena, the active animations and the resource
// registries. All methods must be called from one goroutine at a time.
type Scene struct {
	context  *Context
	userData any
	store    EventStore
	debug    bool
	deleted  bool

	// design resolution captured at creation
	width, height uint32

	nodes      arena
	renderHead uint16 // top-level list
	renderTail uint16
	nodeCount  int // live, non-deleted nodes
	idIndex    map[uint64]uint16

	animations    []animation
	maxAnimations int
	updating      bool
	liveAnims     int

	textures        map[uint64]any
	fonts           map[uint64]any
	dynamicTextures map[uint64]*DynamicTexture
	deletedDynamic  []*DynamicTexture
	layers          map[uint64]uint16
	nextLayerIndex  uint16
	defaultFont     any

	resChanged bool

	// render buffers, reused between frames
	renderEntries []renderEntry
	sortBuf       []renderEntry
	renderNodes   []HNode
	renderMats    []mgl32.Mat4
	ancestors     []uint16
}

// NewScene creates a scene registered with the context.
func (c *Context) NewScene(params SceneParams) *Scene {
	if params.MaxNodes <= 0 {
		params.MaxNodes = DefaultMaxNodes
	}
	if params.MaxNodes > maxNodes {
		params.MaxNodes = maxNodes
	}
	if params.MaxAnimations <= 0 {
		params.MaxAnimations = DefaultMaxAnimations
	}
	s := &Scene{
		context:         c,
		userData:        params.UserData,
		width:           c.width,
		height:          c.height,
		nodes:           newArena(params.MaxNodes),
		renderHead:      invalidIndex,
		renderTail:      invalidIndex,
		idIndex:         make(map[uint64]uint16),
		animations:      make([]animation, 0, params.MaxAnimations),
		maxAnimations:   params.MaxAnimations,
		textures:        make(map[uint64]any),
		fonts:           make(map[uint64]any),
		dynamicTextures: make(map[uint64]*DynamicTexture),
		layers:          make(map[uint64]uint16),
	}
	c.scenes = append(c.scenes, s)
	return s
}

// Delete unregisters the scene from its context and releases its nodes,
// animations and dynamic textures. Pending animation callbacks are dropped.
func (s *Scene) Delete() {
	if s.deleted {
		return
	}
	for hash, tex := range s.dynamicTextures {
		if tex.created && s.context.params.DynamicTextures.Delete != nil {
			s.context.params.DynamicTextures.Delete(tex.handle)
		}
		delete(s.dynamicTextures, hash)
	}
	for _, tex := range s.deletedDynamic {
		if tex.created && s.context.params.DynamicTextures.Delete != nil {
			s.context.params.DynamicTextures.Delete(tex.handle)
		}
	}
	s.deletedDynamic = nil
	s.animations = nil
	s.liveAnims = 0
	s.nodes = arena{}
	clear(s.idIndex)
	s.renderNodes = s.renderNodes[:0]
	s.renderHead, s.renderTail = invalidIndex, invalidIndex
	s.nodeCount = 0
	s.context.removeScene(s)
	s.deleted = true
}

// Context returns the context the scene was created from.
func (s *Scene) Context() *Context {
	return s.context
}

// UserData returns the value passed in SceneParams.
func (s *Scene) UserData() any {
	return s.userData
}

// ReferenceScale returns the ratio between the context's physical resolution
// and the scene's design resolution.
func (s *Scene) ReferenceScale() mgl32.Vec4 {
	return referenceScale(s.context.physicalWidth, s.context.physicalHeight, s.width, s.height)
}

// SetEventStore sets the optional event bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame timing
// stats and hierarchy warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update is the per-frame tick: slots deleted since the previous update are
// reclaimed first, then animations advance by dt seconds.
func (s *Scene) Update(dt float32) error {
	if s.deleted {
		return ErrSceneDeleted
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	stats.collected = s.collect()
	if s.resChanged {
		s.markAllDirty()
		s.resChanged = false
	}

	if s.debug {
		stats.collectTime = time.Since(t0)
		t0 = time.Now()
	}

	s.updateAnimations(dt)

	if s.debug {
		stats.animateTime = time.Since(t0)
		stats.nodeCount = s.nodeCount
		stats.animationCount = s.liveAnims
		s.debugLogUpdate(stats)
	}
	return nil
}

// collect is the deferred-deletion collection point.
func (s *Scene) collect() int {
	for _, idx := range s.nodes.pending {
		sl := &s.nodes.slots[idx]
		if sl.nameHash != 0 && s.idIndex[sl.nameHash] == idx {
			delete(s.idIndex, sl.nameHash)
		}
	}
	return s.nodes.collect()
}

func (s *Scene) markAllDirty() {
	for i := range s.nodes.slots {
		s.nodes.slots[i].node.state.DirtyLocal = true
	}
}

func (s *Scene) emit(ev Event) {
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}

// ResolvePath hashes a resource path through the context's resolver, or
// with HashString when none is set.
func (s *Scene) ResolvePath(path string) uint64 {
	if fn := s.context.params.ResolvePath; fn != nil {
		return fn(s, path)
	}
	return HashString(path)
}

// URL returns the messaging address of the scene's owner, or "" when the
// context has no GetURL callback.
func (s *Scene) URL() string {
	if fn := s.context.params.GetURL; fn != nil {
		return fn(s)
	}
	return ""
}

// OwnerUserData returns the data the context's GetUserData callback reports
// for the scene's owner.
func (s *Scene) OwnerUserData() any {
	if fn := s.context.params.GetUserData; fn != nil {
		return fn(s)
	}
	return nil
}
