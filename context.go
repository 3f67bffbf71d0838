package gui

import "github.com/go-gl/mathgl/mgl32"

// Default design resolution used when ContextParams leaves it unset.
const (
	DefaultWidth  = 640
	DefaultHeight = 960
)

// TextMetricsFunc measures text for a font handle. maxWidth is only
// meaningful when lineBreak is set.
type TextMetricsFunc func(font any, text string, maxWidth float32, lineBreak bool) TextMetrics

// ResolveResourceFunc maps a texture or font name hash to a live handle.
// It returns false when the resource is unknown.
type ResolveResourceFunc func(scene *Scene, nameHash uint64) (any, bool)

// ResolvePathFunc maps a path string to its hash, for callers that address
// resources by path.
type ResolvePathFunc func(scene *Scene, path string) uint64

// GetURLFunc returns the messaging address of the object owning a scene.
type GetURLFunc func(scene *Scene) string

// GetUserDataFunc returns caller data attached to the object owning a scene.
type GetUserDataFunc func(scene *Scene) any

// DynamicTextureCallbacks lets the rendering backend own the GPU side of
// dynamic textures. Create returns the backend handle. Any callback may be nil.
type DynamicTextureCallbacks struct {
	Create func(tex DynamicTextureInfo) any
	Update func(handle any, tex DynamicTextureInfo)
	Delete func(handle any)
}

// ContextParams configures a Context. Zero fields take defaults.
type ContextParams struct {
	Width, Height                 uint32 // design resolution
	PhysicalWidth, PhysicalHeight uint32 // display resolution; defaults to the design resolution

	TextMetrics     TextMetricsFunc
	ResolveResource ResolveResourceFunc
	ResolvePath     ResolvePathFunc
	GetURL          GetURLFunc
	GetUserData     GetUserDataFunc
	DynamicTextures DynamicTextureCallbacks

	// DefaultFont is used by text nodes without a resolvable font.
	DefaultFont any
}

// Context holds the scenes of one display together with the callbacks they
// share. Scenes created from the same Context share no mutable state with
// each other.
type Context struct {
	params         ContextParams
	width, height  uint32
	physicalWidth  uint32
	physicalHeight uint32
	scenes         []*Scene
	defaultFont    any
}

// NewContext creates a context from params.
func NewContext(params ContextParams) *Context {
	c := &Context{params: params, defaultFont: params.DefaultFont}
	c.width, c.height = params.Width, params.Height
	if c.width == 0 {
		c.width = DefaultWidth
	}
	if c.height == 0 {
		c.height = DefaultHeight
	}
	c.physicalWidth, c.physicalHeight = params.PhysicalWidth, params.PhysicalHeight
	if c.physicalWidth == 0 {
		c.physicalWidth = c.width
	}
	if c.physicalHeight == 0 {
		c.physicalHeight = c.height
	}
	return c
}

// Delete deletes every scene still registered with the context.
func (c *Context) Delete() {
	for len(c.scenes) > 0 {
		c.scenes[len(c.scenes)-1].Delete()
	}
}

// Scenes returns the live scenes. The returned slice MUST NOT be mutated.
func (c *Context) Scenes() []*Scene {
	return c.scenes
}

// Resolution returns the design resolution.
func (c *Context) Resolution() (width, height uint32) {
	return c.width, c.height
}

// PhysicalResolution returns the display resolution.
func (c *Context) PhysicalResolution() (width, height uint32) {
	return c.physicalWidth, c.physicalHeight
}

// SetPhysicalResolution updates the display resolution. Every scene
// recomputes its local transforms on the next update or render.
func (c *Context) SetPhysicalResolution(width, height uint32) {
	if width == c.physicalWidth && height == c.physicalHeight {
		return
	}
	c.physicalWidth = width
	c.physicalHeight = height
	for _, s := range c.scenes {
		s.resChanged = true
	}
}

// ReferenceScale is the ratio between the physical resolution and the
// context's design resolution: (pw/w, ph/h, 1, 1).
func (c *Context) ReferenceScale() mgl32.Vec4 {
	return referenceScale(c.physicalWidth, c.physicalHeight, c.width, c.height)
}

// SetDefaultFont sets the font used by scenes without their own default.
func (c *Context) SetDefaultFont(font any) {
	c.defaultFont = font
}

func referenceScale(physicalW, physicalH, designW, designH uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(physicalW) / float32(designW),
		float32(physicalH) / float32(designH),
		1, 1,
	}
}

func (c *Context) removeScene(s *Scene) {
	for i, sc := range c.scenes {
		if sc == s {
			copy(c.scenes[i:], c.scenes[i+1:])
			c.scenes[len(c.scenes)-1] = nil
			c.scenes = c.scenes[:len(c.scenes)-1]
			return
		}
	}
}
