package textmetrics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/gui"
)

// basicfont.Face7x13: advance 7, ascent 11, descent 2, height 13.

func TestMeasureSingleLine(t *testing.T) {
	p := New(nil)
	m := p.Measure(nil, "hello", 0, false)
	if m.Width != 35 {
		t.Errorf("Width = %v, want 35", m.Width)
	}
	if m.MaxAscent != 11 || m.MaxDescent != 2 {
		t.Errorf("ascent/descent = %v/%v, want 11/2", m.MaxAscent, m.MaxDescent)
	}
}

func TestMeasureUnknownHandleUsesDefault(t *testing.T) {
	p := New(basicfont.Face7x13)
	a := p.Measure("not a face", "abc", 0, false)
	b := p.Measure(basicfont.Face7x13, "abc", 0, false)
	if a != b {
		t.Errorf("unknown handle = %+v, want %+v", a, b)
	}
}

func TestMeasureLineBreak(t *testing.T) {
	p := New(nil)
	// "aaa bbb" is 49 wide; a 30-unit limit forces one word per line.
	m := p.Measure(nil, "aaa bbb", 30, true)
	if m.Width != 21 {
		t.Errorf("Width = %v, want 21", m.Width)
	}
	if m.MaxDescent != 2+13 {
		t.Errorf("MaxDescent = %v, want 15", m.MaxDescent)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width float32
		want  []string
	}{
		{"one two three", 0, []string{"one two three"}},
		{"one two three", 7 * 7, []string{"one two", "three"}},
		{"one\ntwo", 100, []string{"one", "two"}},
		{"toolongword x", 21, []string{"toolongword", "x"}},
		{"", 10, []string{""}},
	}
	for _, tt := range tests {
		got := Wrap(basicfont.Face7x13, tt.text, tt.width)
		if len(got) != len(tt.want) {
			t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Wrap(%q, %v)[%d] = %q, want %q", tt.text, tt.width, i, got[i], tt.want[i])
			}
		}
	}
}

func TestProviderAsContextCallback(t *testing.T) {
	p := New(nil)
	ctx := gui.NewContext(gui.ContextParams{TextMetrics: p.Measure})
	s := ctx.NewScene(gui.SceneParams{})
	h, err := s.NewTextNode(mgl32.Vec3{}, "ab")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetNodePivot(h, gui.PivotSW); err != nil {
		t.Fatal(err)
	}
	m, err := s.GetNodeWorldTransform(h, true)
	if err != nil {
		t.Fatal(err)
	}
	// Boundary spans the measured text: 14 wide, 13 tall.
	if m.At(0, 0) != 14 || m.At(1, 1) != 13 {
		t.Errorf("boundary scale = (%v, %v), want (14, 13)", m.At(0, 0), m.At(1, 1))
	}
}
