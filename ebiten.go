package gui

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendAddAlpha:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorSourceAlpha,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendMult:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// EbitenGeoM projects the 2D part of a node transform onto an ebiten.GeoM.
// Z and perspective terms are dropped.
func EbitenGeoM(m mgl32.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m.At(0, 0)))
	g.SetElement(0, 1, float64(m.At(0, 1)))
	g.SetElement(0, 2, float64(m.At(0, 3)))
	g.SetElement(1, 0, float64(m.At(1, 0)))
	g.SetElement(1, 1, float64(m.At(1, 1)))
	g.SetElement(1, 2, float64(m.At(1, 3)))
	return g
}

// EbitenColorScale converts a straight-alpha RGBA property to the
// premultiplied scale ebiten expects.
func EbitenColorScale(c mgl32.Vec4) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(c[0]*c[3], c[1]*c[3], c[2]*c[3], c[3])
	return cs
}

// EbitenDynamicTextures returns callbacks that back dynamic textures with
// *ebiten.Image values.
func EbitenDynamicTextures() DynamicTextureCallbacks {
	return DynamicTextureCallbacks{
		Create: func(tex DynamicTextureInfo) any {
			img := ebiten.NewImage(int(tex.Width), int(tex.Height))
			img.WritePixels(rgbaPixels(tex))
			return img
		},
		Update: func(handle any, tex DynamicTextureInfo) {
			img, ok := handle.(*ebiten.Image)
			if !ok {
				return
			}
			img.WritePixels(rgbaPixels(tex))
		},
		Delete: func(handle any) {
			if img, ok := handle.(*ebiten.Image); ok {
				img.Deallocate()
			}
		},
	}
}

// rgbaPixels expands a dynamic texture buffer to RGBA8.
func rgbaPixels(tex DynamicTextureInfo) []byte {
	if tex.Type == ImageTypeRGBA {
		return tex.Buffer[:int(tex.Width)*int(tex.Height)*4]
	}
	n := int(tex.Width) * int(tex.Height)
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		switch tex.Type {
		case ImageTypeRGB:
			copy(out[i*4:], tex.Buffer[i*3:i*3+3])
		default:
			l := tex.Buffer[i]
			out[i*4], out[i*4+1], out[i*4+2] = l, l, l
		}
		out[i*4+3] = 0xff
	}
	return out
}
