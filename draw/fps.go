package draw

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gui"
)

// fpsRefresh is how often the widget text changes, in seconds.
const fpsRefresh = 0.5

// FPSWidget is a small panel in the top-left corner of a scene showing the
// actual FPS and TPS.
type FPSWidget struct {
	scene   *gui.Scene
	panel   gui.HNode
	label   gui.HNode
	elapsed float32

	// sample reports (fps, tps); swapped out in tests.
	sample func() (float64, float64)
}

// NewFPSWidget adds the widget's nodes to s. The panel is anchored to the
// top-left corner and placed on layer, which may be empty.
func NewFPSWidget(s *gui.Scene, layer string) (*FPSWidget, error) {
	_, h := s.Context().Resolution()
	panel, err := s.NewBoxNode(mgl32.Vec3{0, float32(h), 0}, mgl32.Vec3{100, 32, 0})
	if err != nil {
		return nil, fmt.Errorf("fps widget: %w", err)
	}
	label, err := s.NewTextNode(mgl32.Vec3{4, -14, 0}, "")
	if err != nil {
		s.DeleteNode(panel)
		return nil, fmt.Errorf("fps widget: %w", err)
	}
	_ = s.SetNodeParent(label, panel)
	_ = s.SetNodePivot(panel, gui.PivotNW)
	_ = s.SetNodeXAnchor(panel, gui.XAnchorLeft)
	_ = s.SetNodeYAnchor(panel, gui.YAnchorTop)
	_ = s.SetNodeColor(panel, mgl32.Vec4{0, 0, 0, 0.5})
	_ = s.SetNodePivot(label, gui.PivotW)
	_ = s.SetNodeLineBreak(label, true)
	_ = s.SetNodeSize(label, mgl32.Vec3{92, 0, 0})
	if layer != "" {
		_ = s.SetNodeLayer(panel, layer)
		_ = s.SetNodeLayer(label, layer)
	}

	fw := &FPSWidget{
		scene: s,
		panel: panel,
		label: label,
		sample: func() (float64, float64) {
			return ebiten.ActualFPS(), ebiten.ActualTPS()
		},
	}
	fw.refresh()
	return fw, nil
}

// Update advances the widget by dt seconds.
func (fw *FPSWidget) Update(dt float32) {
	fw.elapsed += dt
	if fw.elapsed < fpsRefresh {
		return
	}
	fw.elapsed = 0
	fw.refresh()
}

// Node returns the widget's root node.
func (fw *FPSWidget) Node() gui.HNode {
	return fw.panel
}

func (fw *FPSWidget) refresh() {
	fps, tps := fw.sample()
	_ = fw.scene.SetNodeText(fw.label, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps))
}
