package gui

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestEbitenGeoM(t *testing.T) {
	m := mgl32.Translate3D(10, 20, 5).Mul4(mgl32.Scale3D(2, 3, 1))
	g := EbitenGeoM(m)
	x, y := g.Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply(1, 1) = (%v, %v), want (12, 23)", x, y)
	}

	g = EbitenGeoM(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	x, y = g.Apply(1, 0)
	assertNear(t, "rotated x", float32(x), 0)
	assertNear(t, "rotated y", float32(y), 1)
}

func TestEbitenColorScale(t *testing.T) {
	cs := EbitenColorScale(mgl32.Vec4{1, 0.5, 0, 0.5})
	assertNear(t, "r", cs.R(), 0.5)
	assertNear(t, "g", cs.G(), 0.25)
	assertNear(t, "b", cs.B(), 0)
	assertNear(t, "a", cs.A(), 0.5)
}

func TestEbitenBlend(t *testing.T) {
	if BlendAlpha.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("alpha should map to source-over")
	}
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("add should map to lighter")
	}
	for _, b := range []BlendMode{BlendAddAlpha, BlendMult, BlendScreen} {
		if b.EbitenBlend() == ebiten.BlendSourceOver {
			t.Errorf("blend %d fell back to source-over", b)
		}
	}
}

func TestRGBAPixels(t *testing.T) {
	tests := []struct {
		name string
		tex  DynamicTextureInfo
		want []byte
	}{
		{
			name: "rgba passthrough",
			tex:  DynamicTextureInfo{Width: 1, Height: 1, Type: ImageTypeRGBA, Buffer: []byte{1, 2, 3, 4, 99}},
			want: []byte{1, 2, 3, 4},
		},
		{
			name: "rgb",
			tex:  DynamicTextureInfo{Width: 2, Height: 1, Type: ImageTypeRGB, Buffer: []byte{1, 2, 3, 4, 5, 6}},
			want: []byte{1, 2, 3, 0xff, 4, 5, 6, 0xff},
		},
		{
			name: "luminance",
			tex:  DynamicTextureInfo{Width: 1, Height: 2, Type: ImageTypeLuminance, Buffer: []byte{7, 8}},
			want: []byte{7, 7, 7, 0xff, 8, 8, 8, 0xff},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgbaPixels(tt.tex); !bytes.Equal(got, tt.want) {
				t.Errorf("rgbaPixels = %v, want %v", got, tt.want)
			}
		})
	}
}
