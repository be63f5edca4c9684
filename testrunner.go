package motion

import (
	"encoding/json"
	"fmt"
	"log"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action   string  `json:"action"`
	Section  string  `json:"section,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"scroll":   true,
	"scrollBy": true,
	"sweep":    true,
	"resize":   true,
	"document": true,
	"smooth":   true,
	"wait":     true,
}

// ScriptRunner replays a recorded browsing session (scrolls, resizes,
// smooth scrolls to sections) against a Page, one step per frame. Attach it
// with Page.SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON replay script and returns a ScriptRunner ready
// to be attached to a Page via SetScriptRunner.
// Sections named by smooth steps are looked up when the step runs; an
// unknown section is logged and skipped.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the page. The runner's step
// method is called from Page.Update before injected events are consumed.
func (p *Page) SetScriptRunner(runner *ScriptRunner) {
	p.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Page.Update.
func (r *ScriptRunner) step(p *Page) {
	if r.done {
		return
	}
	// Wait for pending injections and smooth scrolls to drain before
	// advancing.
	if len(p.injectQueue) > 0 || p.Scrolling() {
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
	case "scroll":
		p.InjectScroll(st.X, st.Y)
	case "scrollBy":
		p.InjectScrollBy(st.X, st.Y)
	case "sweep":
		p.InjectScrollSweep(st.FromY, st.ToY, st.Frames)
	case "resize":
		p.InjectResize(st.Width, st.Height)
	case "document":
		p.InjectDocumentHeight(st.Height)
	case "smooth":
		if st.Section != "" {
			s := p.Section(st.Section)
			if s == nil {
				log.Printf("[ScriptRunner] Warning: step %d: unknown section %q, skipped", r.cursor-1, st.Section)
				break
			}
			p.ScrollToSection(s, st.Y, st.Duration, nil)
		} else {
			p.SmoothScrollTo(st.Y, st.Duration, nil)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 && !p.Scrolling() {
		r.done = true
	}
}
