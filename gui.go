package gui

import "github.com/go-gl/mathgl/mgl32"

// Property selects one animatable vector slot on a node.
type Property uint8

const (
	PropertyPosition  Property = iota // xyz position, relative to the parent
	PropertyRotation                  // Euler angles in degrees (x, y, z)
	PropertyScale                     // xyz scale factors
	PropertyColor                     // RGBA tint in [0, 1]
	PropertySize                      // xy extent of the node's quad
	PropertyOutline                   // RGBA text outline color
	PropertyShadow                    // RGBA text shadow color
	PropertySlice9                    // 9-slice insets (left, top, right, bottom)
	PropertyPieParams                 // pie inner radius, fill angle

	PropertyCount int = iota
)

var propertyNames = [PropertyCount]string{
	"position", "rotation", "scale", "color", "size", "outline", "shadow", "slice9", "pie_params",
}

func (p Property) String() string {
	if int(p) < PropertyCount {
		return propertyNames[p]
	}
	return "unknown"
}

// affectsTransform reports whether writing p invalidates the cached local transform.
func (p Property) affectsTransform() bool {
	switch p {
	case PropertyPosition, PropertyRotation, PropertyScale, PropertySize:
		return true
	}
	return false
}

// BlendMode selects the compositing operation used by the renderer (4 bits).
type BlendMode uint8

const (
	BlendAlpha    BlendMode = iota // source-over
	BlendAdd                       // additive
	BlendAddAlpha                  // additive, weighted by source alpha
	BlendMult                      // multiply
	BlendScreen                    // 1 - (1-src)*(1-dst)
)

// NodeType distinguishes rendering behavior for a node (4 bits).
type NodeType uint8

const (
	NodeTypeBox      NodeType = iota // textured or solid quad
	NodeTypeText                     // glyph run laid out by the text-metrics provider
	NodeTypePie                      // radial fill
	NodeTypeTemplate                 // grouping node with no visual output
)

// XAnchor pins a top-level node to a horizontal screen edge (2 bits).
type XAnchor uint8

const (
	XAnchorNone XAnchor = iota
	XAnchorLeft
	XAnchorRight
)

// YAnchor pins a top-level node to a vertical screen edge (2 bits).
type YAnchor uint8

const (
	YAnchorNone YAnchor = iota
	YAnchorTop
	YAnchorBottom
)

// Pivot is the point of the node's rectangle that sits at its position (4 bits).
type Pivot uint8

const (
	PivotCenter Pivot = iota
	PivotN
	PivotNE
	PivotE
	PivotSE
	PivotS
	PivotSW
	PivotW
	PivotNW
)

// AdjustMode resolves a node's size against the reference scale (2 bits).
type AdjustMode uint8

const (
	AdjustFit     AdjustMode = iota // uniform scale, min of the two ratios
	AdjustZoom                      // uniform scale, max of the two ratios
	AdjustStretch                   // non-uniform, each axis by its own ratio
)

// NodeState is the packed per-node state. Fields are kept separate for
// readability; Pack and UnpackNodeState convert to the 32-bit layout:
//
//	bits 0-3   BlendMode
//	bits 4-7   Type
//	bits 8-9   XAnchor
//	bits 10-11 YAnchor
//	bits 12-15 Pivot
//	bits 16-17 AdjustMode
//	bit  18    LineBreak
//	bit  19    Enabled
//	bit  20    DirtyLocal
type NodeState struct {
	BlendMode  BlendMode
	Type       NodeType
	XAnchor    XAnchor
	YAnchor    YAnchor
	Pivot      Pivot
	AdjustMode AdjustMode
	LineBreak  bool
	Enabled    bool
	DirtyLocal bool
}

// Pack encodes the state into its 32-bit form.
func (s NodeState) Pack() uint32 {
	v := uint32(s.BlendMode&0xf) |
		uint32(s.Type&0xf)<<4 |
		uint32(s.XAnchor&0x3)<<8 |
		uint32(s.YAnchor&0x3)<<10 |
		uint32(s.Pivot&0xf)<<12 |
		uint32(s.AdjustMode&0x3)<<16
	if s.LineBreak {
		v |= 1 << 18
	}
	if s.Enabled {
		v |= 1 << 19
	}
	if s.DirtyLocal {
		v |= 1 << 20
	}
	return v
}

// UnpackNodeState decodes a value produced by NodeState.Pack.
func UnpackNodeState(v uint32) NodeState {
	return NodeState{
		BlendMode:  BlendMode(v & 0xf),
		Type:       NodeType(v >> 4 & 0xf),
		XAnchor:    XAnchor(v >> 8 & 0x3),
		YAnchor:    YAnchor(v >> 10 & 0x3),
		Pivot:      Pivot(v >> 12 & 0xf),
		AdjustMode: AdjustMode(v >> 16 & 0x3),
		LineBreak:  v&(1<<18) != 0,
		Enabled:    v&(1<<19) != 0,
		DirtyLocal: v&(1<<20) != 0,
	}
}

// TextMetrics is the result of measuring a string with a font.
type TextMetrics struct {
	Width      float32
	MaxAscent  float32
	MaxDescent float32
}

// ColorWhite is the default node color.
var ColorWhite = mgl32.Vec4{1, 1, 1, 1}
