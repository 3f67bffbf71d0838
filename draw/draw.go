// Package draw renders gui scenes onto ebiten images.
//
// Box nodes draw their texture, or a solid quad when they have none. Pie
// nodes draw a triangle fan. Text nodes draw through text/v2 using the faces
// of a textmetrics.Provider, so layout matches what the scene measured.
//
// Scenes use a y-up coordinate system with the origin at the bottom-left of
// the display; the renderer flips to ebiten's y-down space.
package draw

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"

	"github.com/phanxgames/gui"
	"github.com/phanxgames/gui/textmetrics"
)

// pieSegments is the number of fan triangles for a full circle.
const pieSegments = 48

// Renderer draws scenes. It is not safe for concurrent use.
type Renderer struct {
	metrics *textmetrics.Provider
	white   *ebiten.Image
	faces   map[font.Face]*text.GoXFace

	vertices []ebiten.Vertex
	indices  []uint16

	// Drawn counts the nodes submitted by the last Draw call.
	Drawn int

	// ScreenshotDir receives the PNGs queued with Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string

	screenshotQueue []string
	shotCount       int
}

// New creates a renderer that lays out text with metrics.
func New(metrics *textmetrics.Provider) *Renderer {
	if metrics == nil {
		metrics = textmetrics.New(nil)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Renderer{
		metrics: metrics,
		white:   white,
		faces:   make(map[font.Face]*text.GoXFace),
	}
}

// Draw renders s onto dst.
func (r *Renderer) Draw(dst *ebiten.Image, s *gui.Scene) error {
	r.Drawn = 0
	if err := s.Render(r.renderNodes, dst); err != nil {
		return err
	}
	r.flushScreenshots(dst)
	return nil
}

func (r *Renderer) renderNodes(s *gui.Scene, nodes []gui.HNode, transforms []mgl32.Mat4, userCtx any) {
	dst := userCtx.(*ebiten.Image)
	var flip ebiten.GeoM
	flip.Scale(1, -1)
	flip.Translate(0, float64(dst.Bounds().Dy()))

	for i, h := range nodes {
		st, err := s.GetNodeState(h)
		if err != nil {
			continue
		}
		c, _ := s.GetNodeProperty(h, gui.PropertyColor)
		if c[3] <= 0 {
			continue
		}
		geo := gui.EbitenGeoM(transforms[i])
		geo.Concat(flip)

		switch st.Type {
		case gui.NodeTypeBox:
			r.drawBox(dst, s, h, geo, st, c)
		case gui.NodeTypePie:
			r.drawPie(dst, s, h, geo, st, c)
		case gui.NodeTypeText:
			r.drawText(dst, s, h, geo, st, c)
		default:
			continue
		}
		r.Drawn++
	}
}

func (r *Renderer) drawBox(dst *ebiten.Image, s *gui.Scene, h gui.HNode, geo ebiten.GeoM, st gui.NodeState, c mgl32.Vec4) {
	img, _ := s.NodeTextureHandle(h).(*ebiten.Image)
	if img == nil {
		img = r.white
	}
	b := img.Bounds()
	// Map the image onto the unit square, top row at y = 1.
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(1/float64(b.Dx()), -1/float64(b.Dy()))
	op.GeoM.Translate(0, 1)
	op.GeoM.Concat(geo)
	op.ColorScale = gui.EbitenColorScale(c)
	op.Blend = st.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}

func (r *Renderer) drawPie(dst *ebiten.Image, s *gui.Scene, h gui.HNode, geo ebiten.GeoM, st gui.NodeState, c mgl32.Vec4) {
	params, _ := s.GetNodeProperty(h, gui.PropertyPieParams)
	fill := float64(params[1])
	if fill == 0 {
		return
	}
	size, _ := s.GetNodeProperty(h, gui.PropertySize)
	inner := 0.0
	if size[0] > 0 {
		inner = math.Min(float64(params[0]/size[0]), 0.5)
	}

	segments := max(int(math.Abs(fill)/360*pieSegments), 1)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	cs := gui.EbitenColorScale(c)
	vertex := func(x, y float64) {
		dx, dy := geo.Apply(x, y)
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cs.R(), ColorG: cs.G(), ColorB: cs.B(), ColorA: cs.A(),
		})
	}
	for i := 0; i <= segments; i++ {
		a := mgl32.DegToRad(float32(fill * float64(i) / float64(segments)))
		cos, sin := math.Cos(float64(a)), math.Sin(float64(a))
		vertex(0.5+inner*cos, 0.5+inner*sin)
		vertex(0.5+0.5*cos, 0.5+0.5*sin)
		if i > 0 {
			base := uint16(2 * (i - 1))
			r.indices = append(r.indices, base, base+1, base+3, base, base+3, base+2)
		}
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = st.BlendMode.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles(r.vertices, r.indices, r.white, &op)
}

func (r *Renderer) drawText(dst *ebiten.Image, s *gui.Scene, h gui.HNode, geo ebiten.GeoM, st gui.NodeState, c mgl32.Vec4) {
	str, _ := s.GetNodeText(h)
	if str == "" {
		return
	}
	face := r.metrics.Face(s.NodeFontHandle(h))
	xface := r.face(face)
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	lineHeight := float64(m.Height) / 64

	lines := []string{str}
	if st.LineBreak {
		size, _ := s.GetNodeProperty(h, gui.PropertySize)
		lines = textmetrics.Wrap(face, str, size[0])
	}
	for i, line := range lines {
		// Glyphs are laid out y-down from the line top; put the first
		// baseline at the node origin.
		var op text.DrawOptions
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, ascent-float64(i)*lineHeight)
		op.GeoM.Concat(geo)
		op.ColorScale = gui.EbitenColorScale(c)
		op.Blend = st.BlendMode.EbitenBlend()
		text.Draw(dst, line, xface, &op)
	}
}

func (r *Renderer) face(f font.Face) *text.GoXFace {
	if xf, ok := r.faces[f]; ok {
		return xf
	}
	xf := text.NewGoXFace(f)
	r.faces[f] = xf
	return xf
}
