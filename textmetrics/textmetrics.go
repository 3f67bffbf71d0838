// Package textmetrics measures gui text nodes with golang.org/x/image/font
// faces.
//
// A Provider plugs into gui.ContextParams:
//
//	tm := textmetrics.New(basicfont.Face7x13)
//	ctx := gui.NewContext(gui.ContextParams{TextMetrics: tm.Measure})
//
// Font handles registered with a scene are expected to be font.Face values;
// any other handle, including nil, measures with the default face.
package textmetrics

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/gui"
)

// Provider measures text with font faces.
type Provider struct {
	def font.Face
}

// New creates a provider. A nil face selects basicfont.Face7x13.
func New(def font.Face) *Provider {
	if def == nil {
		def = basicfont.Face7x13
	}
	return &Provider{def: def}
}

// Face returns the face for a font handle.
func (p *Provider) Face(handle any) font.Face {
	if f, ok := handle.(font.Face); ok && f != nil {
		return f
	}
	return p.def
}

// Measure implements gui.TextMetricsFunc. Width is the widest line. With
// lineBreak set, text wraps at maxWidth and every line after the first
// extends MaxDescent by one line height, so MaxAscent+MaxDescent spans the
// whole block.
func (p *Provider) Measure(handle any, text string, maxWidth float32, lineBreak bool) gui.TextMetrics {
	face := p.Face(handle)
	m := face.Metrics()
	ascent := toFloat(m.Ascent)
	descent := toFloat(m.Descent)

	if !lineBreak {
		return gui.TextMetrics{
			Width:      toFloat(measure(face, text)),
			MaxAscent:  ascent,
			MaxDescent: descent,
		}
	}

	lines := Wrap(face, text, maxWidth)
	var width fixed.Int26_6
	for _, l := range lines {
		width = max(width, measure(face, l))
	}
	if len(lines) > 1 {
		descent += float32(len(lines)-1) * toFloat(m.Height)
	}
	return gui.TextMetrics{
		Width:      toFloat(width),
		MaxAscent:  ascent,
		MaxDescent: descent,
	}
}

// Wrap splits text into lines no wider than maxWidth, breaking at spaces and
// at explicit newlines. A word wider than maxWidth gets a line of its own.
// maxWidth <= 0 only splits at newlines.
func Wrap(face font.Face, text string, maxWidth float32) []string {
	var lines []string
	limit := fixed.Int26_6(maxWidth * 64)
	space := measure(face, " ")
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		var line strings.Builder
		var lineW fixed.Int26_6
		for _, word := range strings.Fields(para) {
			w := measure(face, word)
			if line.Len() > 0 && lineW+space+w > limit {
				lines = append(lines, line.String())
				line.Reset()
				lineW = 0
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
				lineW += space
			}
			line.WriteString(word)
			lineW += w
		}
		lines = append(lines, line.String())
	}
	return lines
}

// measure returns the advance of s including kerning.
func measure(face font.Face, s string) fixed.Int26_6 {
	var advance fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			advance += face.Kern(prev, r)
		}
		if a, ok := face.GlyphAdvance(r); ok {
			advance += a
		}
		prev = r
	}
	return advance
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
