package gui

import "fmt"

// ImageType is the pixel format of a dynamic texture buffer.
type ImageType uint8

const (
	ImageTypeRGB       ImageType = iota // 3 bytes per pixel
	ImageTypeRGBA                       // 4 bytes per pixel
	ImageTypeLuminance                  // 1 byte per pixel
)

// BytesPerPixel returns the buffer stride of one pixel.
func (t ImageType) BytesPerPixel() int {
	switch t {
	case ImageTypeRGB:
		return 3
	case ImageTypeRGBA:
		return 4
	default:
		return 1
	}
}

// DynamicTextureInfo describes the pixel data of a dynamic texture.
type DynamicTextureInfo struct {
	Name   uint64
	Width  uint32
	Height uint32
	Type   ImageType
	Buffer []byte
}

// DynamicTexture is a texture whose pixels are owned by the scene. The
// backend handle is created lazily on the next Render and released one
// Render after DeleteDynamicTexture.
type DynamicTexture struct {
	info    DynamicTextureInfo
	handle  any
	created bool
	deleted bool
	dirty   bool
	resized bool
}

// --- Static textures and fonts ---

// AddTexture registers a texture handle under name.
func (s *Scene) AddTexture(name string, texture any) {
	s.textures[HashString(name)] = texture
}

// RemoveTexture unregisters a texture. Nodes referencing it keep the name
// and stop drawing it from the next Render.
func (s *Scene) RemoveTexture(name string) {
	delete(s.textures, HashString(name))
}

// ClearTextures unregisters every static texture.
func (s *Scene) ClearTextures() {
	clear(s.textures)
}

// AddFont registers a font handle under name.
func (s *Scene) AddFont(name string, font any) {
	s.fonts[HashString(name)] = font
}

// RemoveFont unregisters a font.
func (s *Scene) RemoveFont(name string) {
	delete(s.fonts, HashString(name))
}

// ClearFonts unregisters every font.
func (s *Scene) ClearFonts() {
	clear(s.fonts)
}

// SetDefaultFont sets the font used by text nodes without a font.
func (s *Scene) SetDefaultFont(font any) {
	s.defaultFont = font
}

// DefaultFont returns the scene's default font, falling back to the
// context's.
func (s *Scene) DefaultFont() any {
	if s.defaultFont != nil {
		return s.defaultFont
	}
	return s.context.defaultFont
}

// resolveTexture looks a texture hash up in the scene registry, the live
// dynamic textures and finally the context's resolver.
func (s *Scene) resolveTexture(hash uint64) (any, bool) {
	if hash == 0 {
		return nil, false
	}
	if t, ok := s.textures[hash]; ok {
		return t, true
	}
	if dt, ok := s.dynamicTextures[hash]; ok && dt.created && !dt.deleted {
		return dt.handle, true
	}
	if fn := s.context.params.ResolveResource; fn != nil {
		return fn(s, hash)
	}
	return nil, false
}

func (s *Scene) resolveFont(hash uint64) (any, bool) {
	if hash == 0 {
		return nil, false
	}
	if f, ok := s.fonts[hash]; ok {
		return f, true
	}
	if fn := s.context.params.ResolveResource; fn != nil {
		return fn(s, hash)
	}
	return nil, false
}

// resolveNodeResources refreshes the node's cached handles from its names.
func (s *Scene) resolveNodeResources(n *slot) {
	nd := &n.node
	if nd.textureHash != 0 {
		nd.texture, _ = s.resolveTexture(nd.textureHash)
	}
	if nd.fontHash != 0 {
		nd.font, _ = s.resolveFont(nd.fontHash)
	}
	nd.layerIndex = s.layers[nd.layerHash]
}

// SetNodeTexture sets the node's texture by name. An unknown name is kept
// on the node and reported with ErrResourceNotFound; it resolves once a
// matching texture is registered.
func (s *Scene) SetNodeTexture(h HNode, name string) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	n.node.textureHash = HashString(name)
	var ok bool
	n.node.texture, ok = s.resolveTexture(n.node.textureHash)
	if _, pending := s.dynamicTextures[n.node.textureHash]; pending {
		// Created on the next Render.
		ok = true
	}
	if !ok && n.node.textureHash != 0 {
		s.debugWarnf("texture %q not found", name)
		return fmt.Errorf("texture %q: %w", name, ErrResourceNotFound)
	}
	return nil
}

// GetNodeTexture returns the hash of the node's texture name.
func (s *Scene) GetNodeTexture(h HNode) (uint64, error) {
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return n.node.textureHash, nil
}

// NodeTextureHandle returns the node's resolved texture, or nil.
func (s *Scene) NodeTextureHandle(h HNode) any {
	if n := s.nodes.get(h); n != nil {
		return n.node.texture
	}
	return nil
}

// SetNodeFont sets the node's font by name, with the same semantics as
// SetNodeTexture.
func (s *Scene) SetNodeFont(h HNode, name string) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	n.node.fontHash = HashString(name)
	var ok bool
	n.node.font, ok = s.resolveFont(n.node.fontHash)
	if !ok && n.node.fontHash != 0 {
		s.debugWarnf("font %q not found", name)
		return fmt.Errorf("font %q: %w", name, ErrResourceNotFound)
	}
	n.node.state.DirtyLocal = true
	return nil
}

// GetNodeFont returns the hash of the node's font name.
func (s *Scene) GetNodeFont(h HNode) (uint64, error) {
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return n.node.fontHash, nil
}

// NodeFontHandle returns the node's resolved font, falling back to the
// default font.
func (s *Scene) NodeFontHandle(h HNode) any {
	n := s.nodes.get(h)
	if n == nil {
		return nil
	}
	if n.node.font != nil {
		return n.node.font
	}
	return s.DefaultFont()
}

// --- Layers ---

// AddLayer registers a layer. Layers are ordered by registration, starting
// at index 0. Registering a name twice keeps its first index.
func (s *Scene) AddLayer(name string) uint16 {
	hash := HashString(name)
	if idx, ok := s.layers[hash]; ok {
		return idx
	}
	idx := s.nextLayerIndex
	s.layers[hash] = idx
	s.nextLayerIndex++
	return idx
}

// ClearLayers unregisters every layer. Nodes fall back to layer 0.
func (s *Scene) ClearLayers() {
	clear(s.layers)
	s.nextLayerIndex = 0
}

// SetNodeLayer assigns the node to a layer by name. Unknown layers are kept
// by name, reported with ErrResourceNotFound and drawn in layer 0.
func (s *Scene) SetNodeLayer(h HNode, name string) error {
	n, err := s.lookupLive(h)
	if err != nil {
		return err
	}
	n.node.layerHash = HashString(name)
	idx, ok := s.layers[n.node.layerHash]
	n.node.layerIndex = idx
	if !ok && n.node.layerHash != 0 {
		s.debugWarnf("layer %q not found", name)
		return fmt.Errorf("layer %q: %w", name, ErrResourceNotFound)
	}
	return nil
}

// GetNodeLayer returns the hash of the node's layer name.
func (s *Scene) GetNodeLayer(h HNode) (uint64, error) {
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return n.node.layerHash, nil
}

// --- Dynamic textures ---

// NewDynamicTexture registers a texture backed by buffer. The backend
// texture is created on the next Render. Fails with ErrInvalidOperation if
// a live dynamic texture already uses the name or the buffer is too small.
func (s *Scene) NewDynamicTexture(name string, width, height uint32, typ ImageType, buffer []byte) error {
	hash := HashString(name)
	if dt, ok := s.dynamicTextures[hash]; ok && !dt.deleted {
		return fmt.Errorf("dynamic texture %q exists: %w", name, ErrInvalidOperation)
	}
	if len(buffer) < int(width)*int(height)*typ.BytesPerPixel() {
		return fmt.Errorf("dynamic texture %q: buffer too small: %w", name, ErrInvalidOperation)
	}
	s.dynamicTextures[hash] = &DynamicTexture{
		info: DynamicTextureInfo{
			Name:   hash,
			Width:  width,
			Height: height,
			Type:   typ,
			Buffer: append([]byte(nil), buffer...),
		},
		dirty: true,
	}
	return nil
}

// SetDynamicTextureData replaces the pixels of a dynamic texture.
func (s *Scene) SetDynamicTextureData(name string, width, height uint32, typ ImageType, buffer []byte) error {
	dt, ok := s.dynamicTextures[HashString(name)]
	if !ok || dt.deleted {
		return fmt.Errorf("dynamic texture %q: %w", name, ErrResourceNotFound)
	}
	if len(buffer) < int(width)*int(height)*typ.BytesPerPixel() {
		return fmt.Errorf("dynamic texture %q: buffer too small: %w", name, ErrInvalidOperation)
	}
	if dt.info.Width != width || dt.info.Height != height {
		dt.resized = true
	}
	dt.info.Width = width
	dt.info.Height = height
	dt.info.Type = typ
	dt.info.Buffer = append(dt.info.Buffer[:0], buffer...)
	dt.dirty = true
	return nil
}

// GetDynamicTextureData returns the current pixel data of a dynamic texture.
// The buffer is owned by the scene.
func (s *Scene) GetDynamicTextureData(name string) (DynamicTextureInfo, error) {
	dt, ok := s.dynamicTextures[HashString(name)]
	if !ok || dt.deleted {
		return DynamicTextureInfo{}, fmt.Errorf("dynamic texture %q: %w", name, ErrResourceNotFound)
	}
	return dt.info, nil
}

// DeleteDynamicTexture removes a dynamic texture. The name is free for reuse
// at once; the backend handle is released on the next Render.
func (s *Scene) DeleteDynamicTexture(name string) error {
	hash := HashString(name)
	dt, ok := s.dynamicTextures[hash]
	if !ok || dt.deleted {
		return fmt.Errorf("dynamic texture %q: %w", name, ErrResourceNotFound)
	}
	dt.deleted = true
	delete(s.dynamicTextures, hash)
	s.deletedDynamic = append(s.deletedDynamic, dt)
	return nil
}

// processDynamicTextures drains the pending-deletion list exactly once, then
// creates or uploads textures that changed since the last call. Update is
// only called with the size the handle was created with.
func (s *Scene) processDynamicTextures() {
	cb := s.context.params.DynamicTextures
	for _, dt := range s.deletedDynamic {
		if dt.created && cb.Delete != nil {
			cb.Delete(dt.handle)
		}
	}
	clear(s.deletedDynamic)
	s.deletedDynamic = s.deletedDynamic[:0]

	for _, dt := range s.dynamicTextures {
		if !dt.dirty {
			continue
		}
		switch {
		case !dt.created || dt.resized:
			// Backends get a fresh texture when the size changes.
			if dt.created && cb.Delete != nil {
				cb.Delete(dt.handle)
			}
			dt.handle = nil
			if cb.Create != nil {
				dt.handle = cb.Create(dt.info)
			}
			dt.created = true
		case cb.Update != nil:
			cb.Update(dt.handle, dt.info)
		}
		dt.dirty = false
		dt.resized = false
	}
}
