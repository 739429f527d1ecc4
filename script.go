package flipbook

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// scriptStep is a single action in a script. Coordinates are screen pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Edge   string  `json:"edge,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON script of pointer and book actions, one step
// per frame, for demos and automated captures. Supported actions:
//
//	press, move, release, click  {x, y}
//	drag                         {fromX, fromY, toX, toY, frames}
//	wait                         {frames}
//	reset                        back to the first page
//	autoflip                     {edge: "right" | "left"}
//	capture                      {label}
//
// Call Step before Controller.Update every frame and drain Captures after
// drawing.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	pointer  *InjectedPointer
	captures []string
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "press", "move", "release", "click", "drag", "wait", "reset", "capture":
		case "autoflip":
			if _, err := parseEdge(st.Edge); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps, pointer: NewInjectedPointer(nil)}, nil
}

// Attach routes c's pointer through the runner's injected queue. The
// controller's previous source becomes the fallback when the queue is empty.
func (r *ScriptRunner) Attach(c *Controller) {
	r.pointer.Fallback = c.source
	c.SetSource(r.pointer)
}

// Pointer returns the runner's injected pointer.
func (r *ScriptRunner) Pointer() *InjectedPointer { return r.pointer }

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool { return r.done }

// Captures returns and clears the capture labels requested so far.
func (r *ScriptRunner) Captures() []string {
	out := r.captures
	r.captures = nil
	return out
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(c *Controller) {
	if r.done {
		return
	}
	// Let queued pointer events drain before advancing.
	if r.pointer.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		r.pointer.Press(st.X, st.Y)
	case "move":
		r.pointer.Move(st.X, st.Y)
	case "release":
		r.pointer.Release(st.X, st.Y)
	case "click":
		r.pointer.Click(st.X, st.Y)
	case "drag":
		r.pointer.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		r.pointer.Clear()
		c.ps = pointerState{}
		c.Book().ResetToFirstPage()
	case "autoflip":
		edge, _ := parseEdge(st.Edge)
		if err := c.Book().AutoFlip(edge); err != nil {
			Logger().Warn("flipbook: script autoflip", slog.Int("step", r.cursor-1), slog.Any("err", err))
		}
	case "capture":
		r.captures = append(r.captures, st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.pointer.Pending() == 0 {
		r.done = true
	}
}

func parseEdge(s string) (Edge, error) {
	switch s {
	case "", "right":
		return EdgeRight, nil
	case "left":
		return EdgeLeft, nil
	}
	return EdgeRight, fmt.Errorf("unknown edge %q", s)
}
