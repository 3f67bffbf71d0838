package gui

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the YAML description of a context, a scene and optionally its
// initial node tree.
//
//	width: 640
//	height: 960
//	max_nodes: 256
//	layers: [background, hud]
//	nodes:
//	  - id: panel
//	    type: box
//	    position: [320, 480, 0]
//	    size: [200, 100, 0]
//	    layer: background
//	  - id: title
//	    type: text
//	    parent: panel
//	    text: Hello
type Config struct {
	Width          uint32 `yaml:"width"`
	Height         uint32 `yaml:"height"`
	PhysicalWidth  uint32 `yaml:"physical_width"`
	PhysicalHeight uint32 `yaml:"physical_height"`

	MaxNodes      int  `yaml:"max_nodes"`
	MaxAnimations int  `yaml:"max_animations"`
	Debug         bool `yaml:"debug"`

	Layers []string     `yaml:"layers"`
	Nodes  []NodeConfig `yaml:"nodes"`
}

// NodeConfig describes one node. Parents must appear before their children.
type NodeConfig struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"` // box, text, pie, template
	Parent   string    `yaml:"parent"`
	Position []float32 `yaml:"position"`
	Size     []float32 `yaml:"size"`
	Scale    []float32 `yaml:"scale"`
	Rotation []float32 `yaml:"rotation"`
	Color    []float32 `yaml:"color"`

	Text      string `yaml:"text"`
	LineBreak bool   `yaml:"line_break"`
	Texture   string `yaml:"texture"`
	Font      string `yaml:"font"`
	Layer     string `yaml:"layer"`

	Pivot      string `yaml:"pivot"`   // center, n, ne, e, se, s, sw, w, nw
	XAnchor    string `yaml:"xanchor"` // none, left, right
	YAnchor    string `yaml:"yanchor"` // none, top, bottom
	AdjustMode string `yaml:"adjust"`  // fit, zoom, stretch
	BlendMode  string `yaml:"blend"`   // alpha, add, add_alpha, mult, screen
	Disabled   bool   `yaml:"disabled"`
}

// LoadConfig parses a YAML config.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("gui: unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gui: load %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("gui: %s: %w", path, err)
	}
	return cfg, nil
}

// ContextParams returns the context parameters described by the config.
// Callbacks are left for the caller to fill in.
func (c *Config) ContextParams() ContextParams {
	return ContextParams{
		Width:          c.Width,
		Height:         c.Height,
		PhysicalWidth:  c.PhysicalWidth,
		PhysicalHeight: c.PhysicalHeight,
	}
}

// SceneParams returns the scene parameters described by the config.
func (c *Config) SceneParams() SceneParams {
	return SceneParams{
		MaxNodes:      c.MaxNodes,
		MaxAnimations: c.MaxAnimations,
	}
}

// Build applies the config to s: debug mode, layers, then the node list.
// Existing nodes are kept. If a node fails to build, the nodes created by
// this call are deleted again; debug mode and layers stay applied. Missing
// textures and fonts are not an error; the names stay on the nodes and
// resolve once registered.
func (c *Config) Build(s *Scene) error {
	s.SetDebugMode(c.Debug)
	for _, name := range c.Layers {
		s.AddLayer(name)
	}
	built := make([]HNode, 0, len(c.Nodes))
	for i := range c.Nodes {
		h, err := c.Nodes[i].build(s)
		if err != nil {
			for j := len(built) - 1; j >= 0; j-- {
				s.DeleteNode(built[j])
			}
			return fmt.Errorf("gui: node %d (%q): %w", i, c.Nodes[i].ID, err)
		}
		built = append(built, h)
	}
	return nil
}

func (nc *NodeConfig) build(s *Scene) (HNode, error) {
	typ, err := parseEnum(nodeTypeNames, nc.Type, NodeTypeBox)
	if err != nil {
		return 0, err
	}
	pivot, err := parseEnum(pivotNames, nc.Pivot, PivotCenter)
	if err != nil {
		return 0, err
	}
	xa, err := parseEnum(xAnchorNames, nc.XAnchor, XAnchorNone)
	if err != nil {
		return 0, err
	}
	ya, err := parseEnum(yAnchorNames, nc.YAnchor, YAnchorNone)
	if err != nil {
		return 0, err
	}
	adjust, err := parseEnum(adjustModeNames, nc.AdjustMode, AdjustFit)
	if err != nil {
		return 0, err
	}
	blend, err := parseEnum(blendModeNames, nc.BlendMode, BlendAlpha)
	if err != nil {
		return 0, err
	}

	h, err := s.NewNode(vec3(nc.Position, 0), vec3(nc.Size, 0), typ)
	if err != nil {
		return 0, err
	}
	n := s.nodes.get(h)
	if typ == NodeTypePie {
		n.node.properties[PropertyPieParams] = mgl32.Vec4{0, 360, 0, 0}
	}
	if nc.Scale != nil {
		n.node.properties[PropertyScale] = vec3(nc.Scale, 1).Vec4(1)
	}
	if nc.Rotation != nil {
		n.node.properties[PropertyRotation] = vec3(nc.Rotation, 0).Vec4(0)
	}
	if nc.Color != nil {
		n.node.properties[PropertyColor] = vec4(nc.Color, 1)
	}
	n.node.text = nc.Text
	n.node.state.LineBreak = nc.LineBreak
	n.node.state.Pivot = pivot
	n.node.state.XAnchor = xa
	n.node.state.YAnchor = ya
	n.node.state.AdjustMode = adjust
	n.node.state.BlendMode = blend
	n.node.state.Enabled = !nc.Disabled

	if nc.ID != "" {
		if err := s.SetNodeID(h, nc.ID); err != nil {
			s.DeleteNode(h)
			return 0, err
		}
	}
	if nc.Parent != "" {
		p, ok := s.GetNodeByID(nc.Parent)
		if !ok {
			s.DeleteNode(h)
			return 0, fmt.Errorf("parent %q: %w", nc.Parent, ErrInvalidHandle)
		}
		if err := s.SetNodeParent(h, p); err != nil {
			s.DeleteNode(h)
			return 0, err
		}
	}
	// Unresolved resources keep their names; ErrResourceNotFound is
	// informational here.
	if nc.Texture != "" {
		_ = s.SetNodeTexture(h, nc.Texture)
	}
	if nc.Font != "" {
		_ = s.SetNodeFont(h, nc.Font)
	}
	if nc.Layer != "" {
		_ = s.SetNodeLayer(h, nc.Layer)
	}
	return h, nil
}

var (
	nodeTypeNames = map[string]NodeType{
		"box": NodeTypeBox, "text": NodeTypeText, "pie": NodeTypePie, "template": NodeTypeTemplate,
	}
	pivotNames = map[string]Pivot{
		"center": PivotCenter, "n": PivotN, "ne": PivotNE, "e": PivotE, "se": PivotSE,
		"s": PivotS, "sw": PivotSW, "w": PivotW, "nw": PivotNW,
	}
	xAnchorNames    = map[string]XAnchor{"none": XAnchorNone, "left": XAnchorLeft, "right": XAnchorRight}
	yAnchorNames    = map[string]YAnchor{"none": YAnchorNone, "top": YAnchorTop, "bottom": YAnchorBottom}
	adjustModeNames = map[string]AdjustMode{"fit": AdjustFit, "zoom": AdjustZoom, "stretch": AdjustStretch}
	blendModeNames  = map[string]BlendMode{
		"alpha": BlendAlpha, "add": BlendAdd, "add_alpha": BlendAddAlpha, "mult": BlendMult, "screen": BlendScreen,
	}
)

func parseEnum[T any](names map[string]T, s string, def T) (T, error) {
	if s == "" {
		return def, nil
	}
	v, ok := names[s]
	if !ok {
		return def, fmt.Errorf("unknown value %q: %w", s, ErrInvalidOperation)
	}
	return v, nil
}

// vec3 fills missing components with def.
func vec3(v []float32, def float32) mgl32.Vec3 {
	out := mgl32.Vec3{def, def, def}
	copy(out[:], v)
	return out
}

func vec4(v []float32, def float32) mgl32.Vec4 {
	out := mgl32.Vec4{def, def, def, def}
	copy(out[:], v)
	return out
}
