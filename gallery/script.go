package gallery

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Notches float64 `json:"notches,omitempty"`
}

// Script replays scripted input and screenshots across frames, so the
// gallery can be captured without a human at the mouse.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script of the form
//
//	{"steps": [{"action": "click", "x": 100, "y": 200}, ...]}
//
// Actions are click, drag, wheel, wait, select-first and screenshot.
func LoadScript(data []byte) (*Script, error) {
	var raw struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(raw.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range raw.Steps {
		switch st.Action {
		case "click", "drag", "wheel", "wait", "select-first", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: raw.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// step runs at most one script step. It waits for injected input to drain
// and for the first fetch to finish before advancing.
func (s *Script) step(g *Game) {
	if s.done {
		return
	}
	if len(g.inject) > 0 || g.loading {
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
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		g.InjectWheel(st.Notches)
	case "select-first":
		// Click the nearest balloon wherever it is on screen.
		if len(g.discs) > 0 {
			d := g.discs[len(g.discs)-1]
			g.InjectClick(d.x, d.y)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(g.inject) == 0 {
		s.done = true
	}
}
