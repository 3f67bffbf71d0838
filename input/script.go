package input

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Screenshotter captures the next rendered frame under a label.
type Screenshotter interface {
	Screenshot(label string)
}

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	FromX  float32 `yaml:"fromX"`
	FromY  float32 `yaml:"fromY"`
	ToX    float32 `yaml:"toX"`
	ToY    float32 `yaml:"toY"`
	Frames int     `yaml:"frames"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences injected input and screenshots across frames for
// automated visual testing. Scripts are YAML; JSON documents parse too.
//
//	steps:
//	  - {action: click, x: 320, y: 240}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: after-click}
//	  - {action: drag, fromX: 10, fromY: 10, toX: 200, toY: 10, frames: 20}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script.
func LoadScript(data []byte) (*Script, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("input: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("input: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "drag", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("input: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame, injecting into r and capturing
// through shots, which may be nil. Call it before Router.Update.
func (s *Script) Step(r *Router, shots Screenshotter) {
	if s.done {
		return
	}
	// Let pending injections drain first.
	if r.Pending() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		if shots != nil {
			shots.Screenshot(st.Label)
		}
	case "click":
		r.InjectClick(st.X, st.Y)
	case "drag":
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && r.Pending() == 0 {
		s.done = true
	}
}
